package types

import (
	"time"

	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/shared/projection"
)

// ShipmentProjection transports a shipment together with its persistence metadata.
type ShipmentProjection = projection.Projection[*domain.Shipment]

// NewShipmentProjection wraps an aggregate with persistence metadata.
func NewShipmentProjection(shipment *domain.Shipment, createdAt, updatedAt time.Time) *ShipmentProjection {
	if shipment == nil {
		return nil
	}
	return &ShipmentProjection{
		Entity: shipment,
		Metadata: projection.Metadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}

// CloneProjection duplicates a projection and its aggregate.
func CloneProjection(src *ShipmentProjection) *ShipmentProjection {
	if src == nil {
		return nil
	}
	clone := *src
	clone.Entity = src.Entity.Clone()
	return &clone
}
