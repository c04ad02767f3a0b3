package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/udea/couriersync/internal/domains/vehicles/domain"
	"github.com/udea/couriersync/internal/domains/vehicles/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps the fleet in process memory with a plate index.
type Repository struct {
	mu       sync.RWMutex
	vehicles map[int64]*domain.Vehicle
	byPlate  map[string]int64
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{
		vehicles: map[int64]*domain.Vehicle{},
		byPlate:  map[string]int64{},
	}
}

func (r *Repository) Create(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byPlate[vehicle.Plate]; taken {
		return nil, ports.ErrDuplicatePlate
	}
	r.nextID++
	stored := vehicle.Clone()
	stored.ID = r.nextID
	r.vehicles[stored.ID] = stored
	r.byPlate[stored.Plate] = stored.ID
	return stored.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return v.Clone(), nil
}

func (r *Repository) GetByPlate(_ context.Context, plate string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPlate[plate]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.vehicles[id].Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) Update(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle == nil {
		return nil, errors.New("vehicle is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.vehicles[vehicle.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner, taken := r.byPlate[vehicle.Plate]; taken && owner != vehicle.ID {
		return nil, ports.ErrDuplicatePlate
	}
	delete(r.byPlate, current.Plate)
	r.vehicles[vehicle.ID] = vehicle.Clone()
	r.byPlate[vehicle.Plate] = vehicle.ID
	return vehicle.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byPlate, v.Plate)
	delete(r.vehicles, id)
	return nil
}
