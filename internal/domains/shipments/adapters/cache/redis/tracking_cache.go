// Package redis caches tracking code lookups in Redis.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
)

// KeyPrefix namespaces tracking cache entries.
const KeyPrefix = "shipment:tracking:"

// Store is the byte cache the tracking cache sits on.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type entry struct {
	ID           int64     `json:"id"`
	TrackingCode string    `json:"trackingCode"`
	ClientID     int64     `json:"clientId"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	Observations string    `json:"observations"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type TrackingCache struct {
	store Store
}

var _ ports.TrackingCache = (*TrackingCache)(nil)

func NewTrackingCache(store Store) *TrackingCache {
	return &TrackingCache{store: store}
}

func (c *TrackingCache) Get(ctx context.Context, code string) (*types.ShipmentProjection, bool, error) {
	raw, ok, err := c.store.Get(ctx, KeyPrefix+code)
	if err != nil || !ok {
		return nil, false, err
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// unreadable entries are treated as misses
		_ = c.store.Delete(ctx, KeyPrefix+code)
		return nil, false, nil
	}
	shipment := &domain.Shipment{
		ID:           e.ID,
		TrackingCode: e.TrackingCode,
		ClientID:     e.ClientID,
		Status:       domain.Status(e.Status),
		Priority:     domain.Priority(e.Priority),
		Observations: e.Observations,
	}
	return types.NewShipmentProjection(shipment, e.CreatedAt, e.UpdatedAt), true, nil
}

func (c *TrackingCache) Set(ctx context.Context, shipment *types.ShipmentProjection, ttl time.Duration) error {
	if shipment == nil || shipment.Entity == nil || shipment.Entity.TrackingCode == "" {
		return nil
	}
	s := shipment.Entity
	body, err := json.Marshal(entry{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		ClientID:     s.ClientID,
		Status:       string(s.Status),
		Priority:     string(s.Priority),
		Observations: s.Observations,
		CreatedAt:    shipment.Metadata.CreatedAt,
		UpdatedAt:    shipment.Metadata.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "marshal tracking cache entry")
	}
	return c.store.Set(ctx, KeyPrefix+s.TrackingCode, body, ttl)
}

func (c *TrackingCache) Invalidate(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return c.store.Delete(ctx, KeyPrefix+code)
}
