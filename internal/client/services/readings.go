package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/client/client"
	"github.com/dmitrijs2005/sensorhub/internal/client/models"
)

// ErrBlankSensorID is returned before any request is made.
var ErrBlankSensorID = errors.New("sensor ID must not be blank")

// ReadingService adds and lists readings on the server.
type ReadingService interface {
	Add(ctx context.Context, sensorID string, value float64, ts *time.Time) (*models.Reading, error)
	List(ctx context.Context, sensorID string) ([]models.Reading, error)
}

type readingService struct {
	client client.Client
}

func NewReadingService(c client.Client) ReadingService {
	return &readingService{client: c}
}

func (r *readingService) Add(ctx context.Context, sensorID string, value float64, ts *time.Time) (*models.Reading, error) {
	if strings.TrimSpace(sensorID) == "" {
		return nil, ErrBlankSensorID
	}
	return r.client.AddReading(ctx, models.NewReading{SensorID: sensorID, Value: value, Timestamp: ts})
}

// List returns all readings, or those of sensorID when it is not empty.
func (r *readingService) List(ctx context.Context, sensorID string) ([]models.Reading, error) {
	return r.client.ListReadings(ctx, sensorID)
}
