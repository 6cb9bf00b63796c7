// Package services contains application services for the sensorhub CLI.
// This file defines the authentication service: login, register, logout,
// restoring a cached session, and the liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sensorhub/internal/client/client"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: obtain a token from the server and cache it locally.
//   - Logout: forget the token locally and in the client.
//   - Restore: reuse a cached token from an earlier run, if any.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, store SessionStore) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return a.remember(username, token)
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	token, err := a.client.Register(ctx, username, password)
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return a.remember(username, token)
}

func (a *authService) remember(username, token string) error {
	if err := a.store.Save(Session{UserName: username, Token: token}); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.store.Clear()
}

// Restore loads the cached session and hands its token to the client. It
// returns the cached username, or ErrNoSession.
func (a *authService) Restore(ctx context.Context) (string, error) {
	s, err := a.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return "", err
		}
		return "", fmt.Errorf("session loading error: %w", err)
	}
	a.client.SetToken(s.Token)
	return s.UserName, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
