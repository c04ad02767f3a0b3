package ports

import (
	"context"
	"errors"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
)

var (
	ErrNotFound              = errors.New("shipment not found")
	ErrDuplicateTrackingCode = errors.New("tracking code already assigned")
)

// MutateFunc edits a detached copy of the persisted shipment. Returning an
// error aborts the whole mutation and nothing is written.
type MutateFunc func(current *domain.Shipment) error

// GuardFunc inspects the persisted shipment before a delete. Returning an
// error aborts the delete.
type GuardFunc func(current *domain.Shipment) error

// Repository persists shipments. Update and Delete run their callback while
// holding the row exclusively, so writes to one shipment are serialized.
type Repository interface {
	Create(ctx context.Context, shipment *domain.Shipment) (*types.ShipmentProjection, error)
	GetByID(ctx context.Context, id int64) (*types.ShipmentProjection, error)
	GetByTrackingCode(ctx context.Context, code string) (*types.ShipmentProjection, error)
	List(ctx context.Context) ([]*types.ShipmentProjection, error)
	Update(ctx context.Context, id int64, mutate MutateFunc) (*types.ShipmentProjection, error)
	Delete(ctx context.Context, id int64, guard GuardFunc) error
	Count(ctx context.Context) (int64, error)
}
