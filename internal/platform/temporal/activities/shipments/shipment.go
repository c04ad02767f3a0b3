package shipments

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/udea/couriersync/internal/domains/shipments/application"
	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	shipmentports "github.com/udea/couriersync/internal/domains/shipments/ports"
)

const (
	// PersistShipmentActivityName stores a new shipment without publishing its event.
	PersistShipmentActivityName = "shipments.activities.PersistShipment"
	// PublishShipmentEventActivityName announces a persisted shipment.
	PublishShipmentEventActivityName = "shipments.activities.PublishShipmentEvent"

	// ErrorTypeInvalidInput marks payloads rejected by validation.
	ErrorTypeInvalidInput = "InvalidInput"
	// ErrorTypeNotFound marks references to missing clients.
	ErrorTypeNotFound = "NotFound"
	// ErrorTypeForbidden marks requests the lifecycle manager refused.
	ErrorTypeForbidden = "Forbidden"
)

// Activities groups activities that operate on the shipments bounded context.
type Activities struct {
	persistService shipmentports.Service
	publisher      shipmentports.EventPublisher
}

// NewActivities wires the shipment collaborators into the Temporal activities bundle.
// persistService should be built without an event publisher so events go out once.
func NewActivities(persistService shipmentports.Service, publisher shipmentports.EventPublisher) *Activities {
	return &Activities{persistService: persistService, publisher: publisher}
}

// PersistShipment stores a new shipment and returns its projection.
func (a *Activities) PersistShipment(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*shipmenttypes.ShipmentProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("shipment persist activity not initialized", "clientId", input.ClientID)
		return nil, errors.New("shipment persist activity not initialized")
	}
	logger.Info("PersistShipment activity started", "clientId", input.ClientID)
	projection, err := a.persistService.CreateShipment(ctx, &input)
	if err != nil {
		logger.Error("PersistShipment activity failed", "clientId", input.ClientID, "error", err)
		return nil, classify(err)
	}
	logger.Info("PersistShipment activity completed", "shipmentId", projection.Entity.ID, "trackingCode", projection.Entity.TrackingCode)
	return projection, nil
}

// PublishShipmentEvent hands event to the configured publisher.
func (a *Activities) PublishShipmentEvent(ctx context.Context, event domain.Event) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.publisher == nil {
		logger.Info("event publisher not configured; skipping", "shipmentId", event.ShipmentID)
		return nil
	}
	var hb publishHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("PublishShipmentEvent already completed in prior attempt; skipping", "shipmentId", event.ShipmentID)
		return nil
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		logger.Error("PublishShipmentEvent failed", "shipmentId", event.ShipmentID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, publishHeartbeat{Completed: true})
	logger.Info("PublishShipmentEvent activity completed", "shipmentId", event.ShipmentID, "type", event.Type)
	return nil
}

type publishHeartbeat struct {
	Completed bool
}

func classify(err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidInput, err)
	case errors.Is(err, application.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeNotFound, err)
	case errors.Is(err, application.ErrForbidden):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeForbidden, err)
	default:
		return err
	}
}
