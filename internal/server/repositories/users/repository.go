package users

import (
	"context"

	"github.com/dmitrijs2005/sensorhub/internal/server/models"
)

// Repository stores registered accounts keyed by unique username.
type Repository interface {
	Exists(ctx context.Context, userName string) (bool, error)
	FindByUsername(ctx context.Context, userName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
