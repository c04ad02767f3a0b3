package ports

import (
	"context"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
)

// Service is the shipment lifecycle manager.
type Service interface {
	CreateShipment(ctx context.Context, input *types.CreateShipmentInput) (*types.ShipmentProjection, error)
	FindByID(ctx context.Context, id int64) (*types.ShipmentProjection, error)
	FindByTrackingCode(ctx context.Context, code string) (*types.ShipmentProjection, error)
	List(ctx context.Context) ([]*types.ShipmentProjection, error)
	Update(ctx context.Context, id int64, patch *types.UpdateShipmentInput) (*types.ShipmentProjection, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status, observations string) (*types.ShipmentProjection, error)
	DeleteByID(ctx context.Context, id int64) error
	IsShipmentPending(ctx context.Context, id int64) (bool, error)
	CanDriverUpdateStatus(ctx context.Context, id int64, proposed domain.Status) (bool, error)
	Count(ctx context.Context) (int64, error)
}
