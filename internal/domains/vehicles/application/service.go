package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/udea/couriersync/internal/domains/vehicles/domain"
	"github.com/udea/couriersync/internal/domains/vehicles/ports"
)

type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a vehicle. Plates are unique after normalization.
func (s *Service) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle payload is required", ErrInvalidInput)
	}
	candidate := vehicle.Clone()
	candidate.ID = 0
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, candidate)
	return created, mapError(err)
}

// FindByID returns nil when the vehicle does not exist.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return emptyWhenMissing(s.repo.GetByID(ctx, id))
}

// FindByPlate matches plates case-insensitively and returns nil when none matches.
func (s *Service) FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	plate = domain.NormalizePlate(plate)
	if plate == "" {
		return nil, mapError(domain.ErrEmptyPlate)
	}
	return emptyWhenMissing(s.repo.GetByPlate(ctx, plate))
}

func (s *Service) List(ctx context.Context) ([]*domain.Vehicle, error) {
	vehicles, err := s.repo.List(ctx)
	return vehicles, mapError(err)
}

func (s *Service) Update(ctx context.Context, id int64, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle payload is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapError(err)
	}
	candidate := vehicle.Clone()
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

func emptyWhenMissing(v *domain.Vehicle, err error) (*domain.Vehicle, error) {
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	return v, mapError(err)
}

var _ ports.Service = (*Service)(nil)
