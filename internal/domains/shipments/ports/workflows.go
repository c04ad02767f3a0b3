package ports

import (
	"context"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the shipments bounded context.
type WorkflowOrchestrator interface {
	CreateShipment(ctx context.Context, input types.CreateShipmentInput) (*types.ShipmentProjection, error)
}
