package client

import (
	"context"

	"github.com/dmitrijs2005/sensorhub/internal/client/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username string, password []byte) (string, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
	Ping(ctx context.Context) error
	SetToken(token string)
	AddReading(ctx context.Context, r models.NewReading) (*models.Reading, error)
	ListReadings(ctx context.Context, sensorID string) ([]models.Reading, error)
}
