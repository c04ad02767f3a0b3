package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	shipmentactivities "github.com/udea/couriersync/internal/platform/temporal/activities/shipments"
)

// RunShipmentPersistenceSequence persists a shipment and then announces it.
// A failed announcement is logged and does not undo the persisted shipment.
func RunShipmentPersistenceSequence(ctx workflow.Context, input shipmenttypes.CreateShipmentInput) (*shipmenttypes.ShipmentProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("shipment persistence sequence started", "clientId", input.ClientID)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	publishOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var projection shipmenttypes.ShipmentProjection
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), shipmentactivities.PersistShipmentActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("shipment persistence sequence failed", "clientId", input.ClientID, "error", err)
		return nil, err
	}
	if projection.Entity == nil {
		logger.Info("shipment persistence sequence persisted nothing")
		return &projection, nil
	}
	logger.Info("shipment persistence sequence persisted", "shipmentId", projection.Entity.ID)

	event := domain.Event{
		Type:         domain.EventShipmentCreated,
		ShipmentID:   projection.Entity.ID,
		TrackingCode: projection.Entity.TrackingCode,
		Status:       projection.Entity.Status,
		Observations: projection.Entity.Observations,
		OccurredAt:   workflow.Now(ctx).UTC(),
	}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, publishOptions), shipmentactivities.PublishShipmentEventActivityName, event).Get(ctx, nil); err != nil {
		logger.Warn("shipment persistence sequence publish failed", "shipmentId", projection.Entity.ID, "error", err)
		return &projection, nil
	}
	logger.Info("shipment persistence sequence published", "shipmentId", projection.Entity.ID)
	return &projection, nil
}
