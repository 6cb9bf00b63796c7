// Package server wires configuration, storage, services and transports into a
// runnable sensorhub server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/sensorhub/internal/dbx"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
	"github.com/dmitrijs2005/sensorhub/internal/server/auth"
	"github.com/dmitrijs2005/sensorhub/internal/server/config"
	"github.com/dmitrijs2005/sensorhub/internal/server/httpapi"
	"github.com/dmitrijs2005/sensorhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/sensorhub/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/sensorhub/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
}

// NewApp connects to the database, applies migrations and builds the
// services and transports described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	db, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return assemble(c, logger, db, rm), nil
}

func assemble(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenTTL)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	as := services.NewAuthService(db, rm, hasher, tokens, logger.With("module", "auth_service"))
	rs := services.NewReadingService(db, rm, logger.With("module", "reading_service"))

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewServer(c.EndpointAddrHTTP, as, rs, logger),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db.PingContext),
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves HTTP and gRPC until ctx is cancelled, a shutdown signal arrives
// or either server fails, then closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "config", app.config.String())

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.httpServer)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpcServer)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close failed", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
