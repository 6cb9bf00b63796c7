package services

import (
	"context"

	"github.com/dmitrijs2005/sensorhub/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	CloseErr    error
	RegisterErr error
	LoginErr    error
	PingErr     error
	AddErr      error
	ListErr     error

	TokenRet string
	AddRet   *models.Reading
	ListRet  []models.Reading

	LastUser     string
	LastPassword []byte
	LastReading  models.NewReading
	LastSensorID string
	Token        string
	closed       bool
}

func (f *fakeClient) Close() error {
	f.closed = true
	return f.CloseErr
}

func (f *fakeClient) Register(ctx context.Context, username string, password []byte) (string, error) {
	f.LastUser = username
	f.LastPassword = append([]byte(nil), password...)
	if f.RegisterErr != nil {
		return "", f.RegisterErr
	}
	f.Token = f.TokenRet
	return f.TokenRet, nil
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	f.LastUser = username
	f.LastPassword = append([]byte(nil), password...)
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.Token = f.TokenRet
	return f.TokenRet, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) SetToken(token string) { f.Token = token }

func (f *fakeClient) AddReading(ctx context.Context, r models.NewReading) (*models.Reading, error) {
	f.LastReading = r
	return f.AddRet, f.AddErr
}

func (f *fakeClient) ListReadings(ctx context.Context, sensorID string) ([]models.Reading, error) {
	f.LastSensorID = sensorID
	return f.ListRet, f.ListErr
}

// memStore is an in-memory SessionStore.
type memStore struct {
	session *Session
	saveErr error
	loadErr error
	cleared bool
}

func (m *memStore) Load() (*Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.session == nil {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *memStore) Save(s Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = &s
	return nil
}

func (m *memStore) Clear() error {
	m.cleared = true
	m.session = nil
	return nil
}
