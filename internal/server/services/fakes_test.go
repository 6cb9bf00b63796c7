package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/dbx"
	"github.com/dmitrijs2005/sensorhub/internal/server/auth"
	"github.com/dmitrijs2005/sensorhub/internal/server/models"
	readingsrepo "github.com/dmitrijs2005/sensorhub/internal/server/repositories/readings"
	usersrepo "github.com/dmitrijs2005/sensorhub/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]models.User

	existsErr error
	findErr   error
	createErr error
	creates   int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]models.User{}}
}

func (f *fakeUsersRepo) Exists(ctx context.Context, userName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.users[userName]
	return ok, nil
}

func (f *fakeUsersRepo) FindByUsername(ctx context.Context, userName string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[u.UserName]; ok {
		return nil, common.ErrorConflict
	}
	u.CreatedAt = time.Now()
	f.users[u.UserName] = *u
	f.creates++
	return u, nil
}

func (f *fakeUsersRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeReadingsRepo struct {
	mu     sync.Mutex
	items  []models.Reading
	nextID int64

	err error
}

func (f *fakeReadingsRepo) Create(ctx context.Context, r *models.Reading) (*models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	r.ID = f.nextID
	f.items = append(f.items, *r)
	return r, nil
}

func (f *fakeReadingsRepo) FindByID(ctx context.Context, id int64) (*models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.items {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeReadingsRepo) List(ctx context.Context) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Reading{}, f.items...), nil
}

func (f *fakeReadingsRepo) ListBySensor(ctx context.Context, sensorID string) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Reading{}
	for _, r := range f.items {
		if r.SensorID == sensorID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeReadingsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Readings(db dbx.DBTX) readingsrepo.Repository { return m.r }

// countingHasher records how many verifications ran.
type countingHasher struct {
	auth.PasswordHasher
	mu       sync.Mutex
	verifies int
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.PasswordHasher.Verify(password, hash)
}

func (h *countingHasher) verifyCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}
