package ports

import (
	"context"
	"time"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
)

// ClientLookup resolves client references.
type ClientLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventPublisher announces persisted shipment changes.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// TrackingCache keeps recently read shipments keyed by tracking code.
type TrackingCache interface {
	Get(ctx context.Context, code string) (*types.ShipmentProjection, bool, error)
	Set(ctx context.Context, shipment *types.ShipmentProjection, ttl time.Duration) error
	Invalidate(ctx context.Context, code string) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, domain.Event) error { return nil }

// NoopEventPublisher drops every event.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopTrackingCache struct{}

func (noopTrackingCache) Get(context.Context, string) (*types.ShipmentProjection, bool, error) {
	return nil, false, nil
}

func (noopTrackingCache) Set(context.Context, *types.ShipmentProjection, time.Duration) error {
	return nil
}

func (noopTrackingCache) Invalidate(context.Context, string) error { return nil }

// NoopTrackingCache never stores anything.
var NoopTrackingCache TrackingCache = noopTrackingCache{}
