// Package httpapi exposes the authentication and readings services over a
// JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/logging"
	"github.com/dmitrijs2005/sensorhub/internal/server/models"
	"github.com/dmitrijs2005/sensorhub/internal/server/services"
	"github.com/gin-gonic/gin"
)

const readingsPath = "/api/readings"

// AuthService is the account surface the API needs.
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Principal(ctx context.Context, token string) (*services.Principal, error)
}

// ReadingService is the readings surface the API needs.
type ReadingService interface {
	Save(ctx context.Context, sensorID string, value float64, timestamp *time.Time) (*models.Reading, error)
	Get(ctx context.Context, sensorID string, id int64) (*models.Reading, error)
	ListAll(ctx context.Context) ([]models.Reading, error)
	ListBySensor(ctx context.Context, sensorID string) ([]models.Reading, error)
}

type Server struct {
	address  string
	auth     AuthService
	readings ReadingService
	logger   logging.Logger
	engine   *gin.Engine
}

func NewServer(address string, a AuthService, r ReadingService, l logging.Logger) *Server {
	s := &Server{
		address:  address,
		auth:     a,
		readings: r,
		logger:   l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	installValidator()

	r := gin.New()
	r.Use(requestLogger(s.logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		s.logger.Error(c.Request.Context(), "panic in handler", "panic", rec)
		respondError(c, http.StatusInternalServerError, "internal error")
	}))

	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)

		readings := api.Group("/readings", s.requireBearer())
		readings.POST("", s.createReading)
		readings.GET("", s.listReadings)
		readings.GET("/:sensorId", s.listSensorReadings)
		readings.GET("/:sensorId/:id", s.getReading)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
