package ports

import "context"

// Counter reports how many records a bounded context holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// CounterFunc adapts a function to Counter.
type CounterFunc func(ctx context.Context) (int64, error)

func (f CounterFunc) Count(ctx context.Context) (int64, error) { return f(ctx) }
