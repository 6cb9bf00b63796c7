// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login and resolving bearer tokens
// back to stored accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/dbx"
	"github.com/dmitrijs2005/sensorhub/internal/logging"
	"github.com/dmitrijs2005/sensorhub/internal/server/auth"
	"github.com/dmitrijs2005/sensorhub/internal/server/models"
	"github.com/dmitrijs2005/sensorhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown account, so both failure paths pay for one bcrypt comparison.
const dummyPassword = "sensorhub-timing-equaliser"

// fallbackDummyHash is a well-formed bcrypt hash at the default cost, used
// when the configured hasher cannot produce one. It matches no password.
const fallbackDummyHash = "$2a$10$Ue6p0zKq2bVn7rT4sW9xYu3hJkLmN0pQrStUvWxYz12aBcDeFgHiK"

// PasswordLengthMessage is reported when a password falls outside the
// accepted length range.
const PasswordLengthMessage = "password must be between 6 and 72 characters"

// Principal is the authenticated caller behind a bearer token.
type Principal struct {
	UserName string
	Role     string
}

// AuthService provides authentication-related operations:
// - Register: create accounts and mint a token
// - Login: verify credentials and mint a token
// - Principal: resolve a bearer token to the stored account
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      *auth.TokenService
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	tokens *auth.TokenService, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register creates an account for username and returns a token for it.
// A taken username yields common.ErrorConflict and writes nothing.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username)
		if err != nil {
			return fmt.Errorf("%w: checking username: %v", common.ErrorInternal, err)
		}
		if exists {
			return common.ErrorConflict
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return common.ValidationErrors{{Field: "password", Message: PasswordLengthMessage}}
			}
			return fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
		}

		user := &models.User{
			ID:           uuid.NewString(),
			UserName:     username,
			PasswordHash: hash,
			Role:         common.DefaultRole,
		}
		if _, err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return common.ErrorConflict
			}
			return fmt.Errorf("%w: creating user: %v", common.ErrorInternal, err)
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorConflict):
		s.logger.Info(ctx, "registration rejected, username taken", "username", username)
		return "", err
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorInternal):
		return "", err
	default:
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("%w: issuing token: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user registered", "username", username)
	return token, nil
}

// Login verifies credentials and returns a fresh token. Unknown usernames and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: finding user: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.UserName)
	if err != nil {
		return "", fmt.Errorf("%w: issuing token: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// Principal resolves a bearer token to the account it was issued for.
// Expired tokens yield common.ErrTokenExpired; tokens that fail verification
// or name an unknown account yield common.ErrInvalidToken.
func (s *AuthService) Principal(ctx context.Context, token string) (*Principal, error) {
	username, err := s.tokens.Authenticate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: finding user: %v", common.ErrorInternal, err)
	}

	if !s.tokens.IsValid(token, user.UserName) {
		return nil, common.ErrInvalidToken
	}

	return &Principal{UserName: user.UserName, Role: user.Role}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn(context.Background(), "dummy hash unavailable, using fallback", "error", err)
			h = fallbackDummyHash
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
