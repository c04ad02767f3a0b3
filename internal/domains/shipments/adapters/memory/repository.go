package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory shipment persistence adapter. A single mutex
// serializes every write, which also serializes writes per shipment id.
type Repository struct {
	mu        sync.RWMutex
	shipments map[int64]*types.ShipmentProjection
	byCode    map[string]int64
	nextID    int64
	now       func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		shipments: map[int64]*types.ShipmentProjection{},
		byCode:    map[string]int64{},
		now:       time.Now,
	}
}

func (r *Repository) Create(_ context.Context, shipment *domain.Shipment) (*types.ShipmentProjection, error) {
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	clone := shipment.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.TrackingCode == "" {
		return nil, domain.ErrInvalidTrackingCode
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byCode[clone.TrackingCode]; taken {
		return nil, ports.ErrDuplicateTrackingCode
	}
	r.nextID++
	clone.ID = r.nextID
	now := r.now().UTC()
	stored := types.NewShipmentProjection(clone, now, now)
	r.shipments[clone.ID] = stored
	r.byCode[clone.TrackingCode] = clone.ID
	return types.CloneProjection(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*types.ShipmentProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.shipments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return types.CloneProjection(stored), nil
}

func (r *Repository) GetByTrackingCode(_ context.Context, code string) (*types.ShipmentProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return types.CloneProjection(r.shipments[id]), nil
}

func (r *Repository) List(_ context.Context) ([]*types.ShipmentProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*types.ShipmentProjection, 0, len(r.shipments))
	for _, stored := range r.shipments {
		list = append(list, types.CloneProjection(stored))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate ports.MutateFunc) (*types.ShipmentProjection, error) {
	if mutate == nil {
		return nil, errors.New("mutate func is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.shipments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	working := stored.Entity.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	if working.TrackingCode != stored.Entity.TrackingCode {
		return nil, domain.ErrTrackingCodeLocked
	}
	working.ID = id
	if err := working.Validate(); err != nil {
		return nil, err
	}
	updated := types.NewShipmentProjection(working, stored.Metadata.CreatedAt, r.now().UTC())
	r.shipments[id] = updated
	return types.CloneProjection(updated), nil
}

func (r *Repository) Delete(_ context.Context, id int64, guard ports.GuardFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.shipments[id]
	if !ok {
		return ports.ErrNotFound
	}
	if guard != nil {
		if err := guard(stored.Entity.Clone()); err != nil {
			return err
		}
	}
	delete(r.byCode, stored.Entity.TrackingCode)
	delete(r.shipments, id)
	return nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.shipments)), nil
}
