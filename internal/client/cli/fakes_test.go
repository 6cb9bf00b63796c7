package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/client/config"
	"github.com/dmitrijs2005/sensorhub/internal/client/models"
	"github.com/dmitrijs2005/sensorhub/internal/client/services"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
)

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	loginUser string
	loginPass []byte
	loginErr  error

	regUser string
	regPass []byte
	regErr  error

	logoutCalls int
	logoutErr   error

	restoreUser string
	restoreErr  error

	pingErr error
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) Restore(context.Context) (string, error) {
	return f.restoreUser, f.restoreErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeReadings struct {
	addSensor string
	addValue  float64
	addTS     *time.Time
	addRet    *models.Reading
	addErr    error

	listSensor string
	listRet    []models.Reading
	listErr    error
}

func (f *fakeReadings) Add(_ context.Context, sensorID string, value float64, ts *time.Time) (*models.Reading, error) {
	f.addSensor, f.addValue, f.addTS = sensorID, value, ts
	return f.addRet, f.addErr
}

func (f *fakeReadings) List(_ context.Context, sensorID string) ([]models.Reading, error) {
	f.listSensor = sensorID
	return f.listRet, f.listErr
}

var _ services.AuthService = (*fakeAuth)(nil)
var _ services.ReadingService = (*fakeReadings)(nil)

func newTestApp(auth *fakeAuth, readings *fakeReadings, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		config:         &config.Config{OnlineCheckInterval: 10 * time.Millisecond, RequestTimeout: time.Second},
		logger:         logging.Nop(),
		authService:    auth,
		readingService: readings,
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            out,
	}, out
}
