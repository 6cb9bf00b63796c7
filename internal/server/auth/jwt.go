// Package auth issues and checks the bearer tokens handed out on register and
// login, and hashes account passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs HS256 JWTs carrying the username as "sub". A token is
// valid iff its signature verifies and the current time is before "exp".
// Timestamps are whole seconds; exp = iat + ttl, fixed at issue time.
//
// A TokenService holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret. The secret length
// is checked by config.Validate before the service is built.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of s reading the time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// TTL is the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token for subject.
func (s *TokenService) Issue(subject string) (string, error) {
	issuedAt := s.now().Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExtractSubject checks structure, algorithm and signature of token and
// returns its subject. Expiry is deliberately not checked here; see IsValid
// and Authenticate. Every failure is common.ErrInvalidToken.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether token verifies, belongs to expectedUsername and has
// not expired. A token is already expired at the exact second of "exp".
func (s *TokenService) IsValid(token, expectedUsername string) bool {
	subject, err := s.Authenticate(token)
	if err != nil {
		return false
	}
	return subject == expectedUsername
}

// Authenticate returns the subject of a fully valid token. Expired tokens
// yield common.ErrTokenExpired, anything else common.ErrInvalidToken.
func (s *TokenService) Authenticate(token string) (string, error) {
	claims, err := s.parse(token, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
