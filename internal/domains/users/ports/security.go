package ports

import (
	"context"
	"errors"
	"time"

	"github.com/udea/couriersync/internal/shared/principal"
)

// ErrInvalidToken is returned for malformed, forged or expired tokens.
var ErrInvalidToken = errors.New("invalid access token")

// PasswordHasher turns plain-text passwords into one-way hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(p principal.Principal) (token string, expiresAt time.Time, err error)
	Verify(token string) (principal.Principal, error)
}

// LoginLimiter throttles repeated sign-in attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type unlimited struct{}

func (unlimited) Allow(context.Context, string) (bool, error) { return true, nil }
func (unlimited) Reset(context.Context, string) error         { return nil }

// NoopLoginLimiter admits every attempt.
var NoopLoginLimiter LoginLimiter = unlimited{}
