package ports

import (
	"context"

	"github.com/udea/couriersync/internal/domains/vehicles/domain"
)

// Service exposes fleet use cases to adapters.
type Service interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, id int64, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteByID(ctx context.Context, id int64) error
}
