package shipments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	shipmentactivities "github.com/udea/couriersync/internal/platform/temporal/activities/shipments"
)

func persistStub(context.Context, shipmenttypes.CreateShipmentInput) (*shipmenttypes.ShipmentProjection, error) {
	return nil, nil
}

func publishStub(context.Context, domain.Event) error { return nil }

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(persistStub, activity.RegisterOptions{Name: shipmentactivities.PersistShipmentActivityName})
	env.RegisterActivityWithOptions(publishStub, activity.RegisterOptions{Name: shipmentactivities.PublishShipmentEventActivityName})
	return env
}

func TestShipmentCreationWorkflow_PersistsThenPublishes(t *testing.T) {
	env := newEnv(t)
	persisted := shipmenttypes.NewShipmentProjection(&domain.Shipment{
		ID:           11,
		TrackingCode: "CSWF00001",
		ClientID:     4,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
	}, time.Unix(0, 0).UTC(), time.Unix(0, 0).UTC())

	env.OnActivity(shipmentactivities.PersistShipmentActivityName, mock.Anything, mock.Anything).Return(persisted, nil).Once()
	env.OnActivity(shipmentactivities.PublishShipmentEventActivityName, mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventShipmentCreated && e.ShipmentID == 11 && e.TrackingCode == "CSWF00001"
	})).Return(nil).Once()

	env.ExecuteWorkflow(ShipmentCreationWorkflow, ShipmentCreationWorkflowInput{
		Command: shipmenttypes.CreateShipmentInput{ClientID: 4},
		TraceID: "trace",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result shipmenttypes.ShipmentProjection
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, "CSWF00001", result.Entity.TrackingCode)
	env.AssertExpectations(t)
}

func TestShipmentCreationWorkflow_PublishFailureKeepsShipment(t *testing.T) {
	env := newEnv(t)
	persisted := shipmenttypes.NewShipmentProjection(&domain.Shipment{ID: 2, TrackingCode: "CSWF00002", ClientID: 1}, time.Unix(0, 0).UTC(), time.Unix(0, 0).UTC())

	env.OnActivity(shipmentactivities.PersistShipmentActivityName, mock.Anything, mock.Anything).Return(persisted, nil)
	env.OnActivity(shipmentactivities.PublishShipmentEventActivityName, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	env.ExecuteWorkflow(ShipmentCreationWorkflow, ShipmentCreationWorkflowInput{Command: shipmenttypes.CreateShipmentInput{ClientID: 1}})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result shipmenttypes.ShipmentProjection
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, int64(2), result.Entity.ID)
}

func TestShipmentCreationWorkflow_NonRetryablePersistError(t *testing.T) {
	env := newEnv(t)
	env.OnActivity(shipmentactivities.PersistShipmentActivityName, mock.Anything, mock.Anything).
		Return(nil, temporal.NewNonRetryableApplicationError("client missing", shipmentactivities.ErrorTypeNotFound, nil)).Once()

	env.ExecuteWorkflow(ShipmentCreationWorkflow, ShipmentCreationWorkflowInput{Command: shipmenttypes.CreateShipmentInput{ClientID: 99}})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, shipmentactivities.ErrorTypeNotFound, appErr.Type())
	env.AssertExpectations(t)
}
