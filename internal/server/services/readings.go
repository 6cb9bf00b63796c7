package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
	"github.com/dmitrijs2005/sensorhub/internal/server/models"
	"github.com/dmitrijs2005/sensorhub/internal/server/repositories/repomanager"
)

// ReadingService ingests and lists sensor readings.
type ReadingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewReadingService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ReadingService {
	return &ReadingService{db: db, repomanager: m, logger: logger, now: time.Now}
}

// Save stores a reading. A nil timestamp means now.
func (s *ReadingService) Save(ctx context.Context, sensorID string, value float64, timestamp *time.Time) (*models.Reading, error) {
	if strings.TrimSpace(sensorID) == "" {
		return nil, common.ValidationErrors{{Field: "sensorId", Message: "sensorId must not be blank"}}
	}

	ts := s.now()
	if timestamp != nil {
		ts = *timestamp
	}

	r, err := s.repomanager.Readings(s.db).Create(ctx, &models.Reading{SensorID: sensorID, Value: value, Timestamp: ts})
	if err != nil {
		return nil, fmt.Errorf("error saving reading: %w", err)
	}

	s.logger.Debug(ctx, "reading saved", "id", r.ID, "sensor_id", r.SensorID)
	return r, nil
}

// Get returns reading id of sensorID. A reading that exists under another
// sensor is reported as common.ErrorNotFound.
func (s *ReadingService) Get(ctx context.Context, sensorID string, id int64) (*models.Reading, error) {
	r, err := s.repomanager.Readings(s.db).FindByID(ctx, id)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading reading: %w", err)
	}
	if err != nil || r.SensorID != sensorID {
		return nil, fmt.Errorf("%w: no reading %d found for sensor ID: %s", common.ErrorNotFound, id, sensorID)
	}
	return r, nil
}

// ListAll returns every stored reading in insertion order.
func (s *ReadingService) ListAll(ctx context.Context) ([]models.Reading, error) {
	items, err := s.repomanager.Readings(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing readings: %w", err)
	}
	return items, nil
}

// ListBySensor returns the readings of one sensor, or common.ErrorNotFound
// when it has none.
func (s *ReadingService) ListBySensor(ctx context.Context, sensorID string) ([]models.Reading, error) {
	items, err := s.repomanager.Readings(s.db).ListBySensor(ctx, sensorID)
	if err != nil {
		return nil, fmt.Errorf("error listing readings: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no readings found for sensor ID: %s", common.ErrorNotFound, sensorID)
	}
	return items, nil
}
