package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sensorhub/internal/dbx"
	"github.com/dmitrijs2005/sensorhub/internal/server/repositories/readings"
	"github.com/dmitrijs2005/sensorhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Readings(db dbx.DBTX) readings.Repository
}
