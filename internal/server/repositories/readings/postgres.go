// Package readings implements sensor reading persistence on PostgreSQL.
package readings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/dbx"
	"github.com/dmitrijs2005/sensorhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, reading *models.Reading) (*models.Reading, error) {
	query :=
		`INSERT INTO readings (sensor_id, value, timestamp)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		reading.SensorID, reading.Value, reading.Timestamp).Scan(&reading.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reading, nil
}

// FindByID returns common.ErrorNotFound when no reading has id.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Reading, error) {
	query :=
		`SELECT id, sensor_id, value, timestamp FROM readings
		 WHERE id = $1
		 `

	var m models.Reading
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.SensorID, &m.Value, &m.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Reading, error) {
	query :=
		`SELECT id, sensor_id, value, timestamp FROM readings
		 ORDER BY id
		 `

	return r.query(ctx, query)
}

func (r *PostgresRepository) ListBySensor(ctx context.Context, sensorID string) ([]models.Reading, error) {
	query :=
		`SELECT id, sensor_id, value, timestamp FROM readings
		 WHERE sensor_id = $1
		 ORDER BY id
		 `

	return r.query(ctx, query, sensorID)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Reading, 0)
	for rows.Next() {
		var m models.Reading
		if err := rows.Scan(&m.ID, &m.SensorID, &m.Value, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
