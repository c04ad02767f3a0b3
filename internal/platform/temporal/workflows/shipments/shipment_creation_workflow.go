package shipments

import (
	"go.temporal.io/sdk/workflow"

	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/platform/temporal/sequences"
)

const (
	// ShipmentCreationWorkflowName is the public identifier for registering the workflow.
	ShipmentCreationWorkflowName = "shipments.workflows.Creation"
	// ShipmentCreationTaskQueue is the queue consumed by the worker processing shipment workflows.
	ShipmentCreationTaskQueue = "SHIPMENT_CREATION"
)

// ShipmentCreationWorkflowInput captures the payload required to register a shipment.
type ShipmentCreationWorkflowInput struct {
	Command shipmenttypes.CreateShipmentInput
	TraceID string
}

// ShipmentCreationWorkflow persists a shipment and publishes its creation event.
func ShipmentCreationWorkflow(ctx workflow.Context, input ShipmentCreationWorkflowInput) (*shipmenttypes.ShipmentProjection, error) {
	logger := workflow.GetLogger(ctx)
	clientID := input.Command.ClientID
	logger.Info("ShipmentCreationWorkflow started", withTraceID(input.TraceID, "clientId", clientID)...)
	projection, err := sequences.RunShipmentPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ShipmentCreationWorkflow failed", withTraceID(input.TraceID, "clientId", clientID, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Entity != nil {
		logger.Info("ShipmentCreationWorkflow completed", withTraceID(input.TraceID, "shipmentId", projection.Entity.ID, "trackingCode", projection.Entity.TrackingCode)...)
	} else {
		logger.Info("ShipmentCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
