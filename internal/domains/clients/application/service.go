package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/udea/couriersync/internal/domains/clients/domain"
	"github.com/udea/couriersync/internal/domains/clients/ports"
)

// Service exposes client use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client payload is required", ErrInvalidInput)
	}
	candidate := client.Clone()
	candidate.ID = 0
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, candidate)
	return created, mapError(err)
}

// FindByID returns nil when the client does not exist.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return client, mapError(err)
}

func (s *Service) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.repo.List(ctx)
	return clients, mapError(err)
}

func (s *Service) Update(ctx context.Context, id int64, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client payload is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapError(err)
	}
	candidate := client.Clone()
	candidate.ID = id
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.Update(ctx, candidate)
	return updated, mapError(err)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return mapError(s.repo.Delete(ctx, id))
}

// Exists reports whether a client with id is stored.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

var _ ports.Service = (*Service)(nil)
