package ports

import (
	"context"
	"errors"

	"github.com/udea/couriersync/internal/domains/vehicles/domain"
)

var (
	ErrNotFound       = errors.New("vehicle not found")
	ErrDuplicatePlate = errors.New("vehicle plate already registered")
)

type Repository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}
