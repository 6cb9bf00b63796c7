package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/client/client"
	"github.com/dmitrijs2005/sensorhub/internal/client/config"
	"github.com/dmitrijs2005/sensorhub/internal/client/services"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	authService    services.AuthService
	readingService services.ReadingService
	reader         *bufio.Reader
	out            io.Writer

	mu       sync.Mutex
	userName string
	mode     Mode
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	apiClient := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)

	as := services.NewAuthService(apiClient, services.NewFileSessionStore(c.TokenFile))
	rs := services.NewReadingService(apiClient)

	return &App{
		config:         c,
		logger:         logger,
		authService:    as,
		readingService: rs,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

// Run restores a cached login, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to sensorhub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher probes the server once immediately and then every
// interval, switching Mode on changes.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.probe(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
