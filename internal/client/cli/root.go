package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sensorhub/internal/client/services"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) restore(ctx context.Context) {
	user, err := a.authService.Restore(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			a.logger.Warn(ctx, "cached login unusable", "error", err)
		}
		return
	}
	a.setUser(user)
	printlnFn("Logged in as", user)
}
