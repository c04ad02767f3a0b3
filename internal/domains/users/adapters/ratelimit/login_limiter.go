// Package ratelimit throttles sign-in attempts with a Redis fixed window.
package ratelimit

import (
	"context"
	"time"

	"github.com/udea/couriersync/internal/domains/users/ports"
)

// Counter is the fixed-window counter backing the limiter.
type Counter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
	Reset(ctx context.Context, key string) error
}

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

type LoginLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	prefix  string
}

// NewLoginLimiter admits limit attempts per key inside window.
func NewLoginLimiter(counter Counter, limit int64, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{counter: counter, limit: limit, window: window, prefix: "ratelimit:"}
}

func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	ok, _, err := l.counter.Allow(ctx, l.prefix+key, l.limit, l.window)
	return ok, err
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.counter.Reset(ctx, l.prefix+key)
}
