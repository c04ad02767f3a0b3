// Package application computes the administrator dashboard.
package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udea/couriersync/internal/domains/dashboard/ports"
)

// Metrics are the headline totals shown to administrators.
type Metrics struct {
	Shipments int64
	Clients   int64
	Users     int64
}

type Service struct {
	shipments ports.Counter
	clients   ports.Counter
	users     ports.Counter
}

func NewService(shipments, clients, users ports.Counter) *Service {
	return &Service{shipments: shipments, clients: clients, users: users}
}

// Metrics counts each context concurrently and fails if any count fails.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	group, ctx := errgroup.WithContext(ctx)
	count := func(name string, c ports.Counter, dst *int64) {
		group.Go(func() error {
			if c == nil {
				return nil
			}
			n, err := c.Count(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count("shipments", s.shipments, &m.Shipments)
	count("clients", s.clients, &m.Clients)
	count("users", s.users, &m.Users)
	if err := group.Wait(); err != nil {
		return Metrics{}, err
	}
	return m, nil
}
