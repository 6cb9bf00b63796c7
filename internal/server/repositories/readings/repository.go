package readings

import (
	"context"

	"github.com/dmitrijs2005/sensorhub/internal/server/models"
)

// Repository stores sensor readings. Listing order is insertion order.
type Repository interface {
	Create(ctx context.Context, r *models.Reading) (*models.Reading, error)
	FindByID(ctx context.Context, id int64) (*models.Reading, error)
	List(ctx context.Context) ([]models.Reading, error)
	ListBySensor(ctx context.Context, sensorID string) ([]models.Reading, error)
}
