package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/udea/couriersync/internal/domains/clients/domain"
	"github.com/udea/couriersync/internal/domains/clients/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps clients in process memory.
type Repository struct {
	mu      sync.RWMutex
	clients map[int64]*domain.Client
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{clients: map[int64]*domain.Client{}}
}

func (r *Repository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := client.Clone()
	stored.ID = r.nextID
	r.clients[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.clients[client.ID] = client.Clone()
	return client.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.clients)), nil
}
