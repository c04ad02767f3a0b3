package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/udea/couriersync/internal/domains/shipments/adapters/memory"
	"github.com/udea/couriersync/internal/domains/shipments/application"
	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	shipmentactivities "github.com/udea/couriersync/internal/platform/temporal/activities/shipments"
	shipmentworkflows "github.com/udea/couriersync/internal/platform/temporal/workflows/shipments"
)

var zeroTime time.Time

type stubRun struct {
	client.WorkflowRun
	result *shipmenttypes.ShipmentProjection
	err    error
}

func (r stubRun) Get(_ context.Context, valuePtr interface{}) error {
	if r.err != nil {
		return r.err
	}
	raw, err := json.Marshal(r.result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, valuePtr)
}

type stubStarter struct {
	options  client.StartWorkflowOptions
	args     []interface{}
	run      stubRun
	err      error
}

func (s *stubStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
	s.options = options
	s.args = args
	if s.err != nil {
		return nil, s.err
	}
	return s.run, nil
}

// dedupCluster rejects a start whose id is already running and echoes the command back as the result.
type dedupCluster struct {
	running map[string]bool
	nextID  int64
}

func (c *dedupCluster) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
	if c.running[options.ID] {
		return nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "req", "run-1")
	}
	c.running[options.ID] = true
	c.nextID++
	in := args[0].(shipmentworkflows.ShipmentCreationWorkflowInput)
	shipment := &domain.Shipment{ID: c.nextID, ClientID: in.Command.ClientID, Priority: in.Command.Priority, Status: domain.StatusPending}
	return stubRun{result: shipmenttypes.NewShipmentProjection(shipment, zeroTime, zeroTime)}, nil
}

func sharedTraceContext() context.Context {
	sc := oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    oteltrace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36},
		SpanID:     oteltrace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		TraceFlags: oteltrace.FlagsSampled,
	})
	return oteltrace.ContextWithSpanContext(context.Background(), sc)
}

func TestTemporalShipmentWorkflows_StartsOnTaskQueue(t *testing.T) {
	starter := &stubStarter{run: stubRun{result: shipmenttypes.NewShipmentProjection(&domain.Shipment{ID: 5, TrackingCode: "CSORC0001"}, zeroTime, zeroTime)}}
	o := NewTemporalShipmentWorkflows(starter)

	got, err := o.CreateShipment(context.Background(), shipmenttypes.CreateShipmentInput{ClientID: 3})
	require.NoError(t, err)
	require.Equal(t, "CSORC0001", got.Entity.TrackingCode)
	require.Equal(t, shipmentworkflows.ShipmentCreationTaskQueue, starter.options.TaskQueue)
	require.Contains(t, starter.options.ID, "shipment-creation-3-fallback-")
	require.Len(t, starter.args, 1)
	in, ok := starter.args[0].(shipmentworkflows.ShipmentCreationWorkflowInput)
	require.True(t, ok)
	require.Equal(t, int64(3), in.Command.ClientID)
}

func TestTemporalShipmentWorkflows_TranslatesApplicationErrors(t *testing.T) {
	cases := map[string]error{
		shipmentactivities.ErrorTypeInvalidInput: application.ErrInvalidInput,
		shipmentactivities.ErrorTypeNotFound:     application.ErrNotFound,
		shipmentactivities.ErrorTypeForbidden:    application.ErrForbidden,
	}
	for errType, want := range cases {
		t.Run(errType, func(t *testing.T) {
			failure := temporal.NewNonRetryableApplicationError("rejected", errType, nil)
			o := NewTemporalShipmentWorkflows(&stubStarter{run: stubRun{err: failure}})
			_, err := o.CreateShipment(context.Background(), shipmenttypes.CreateShipmentInput{ClientID: 1})
			require.ErrorIs(t, err, want)
		})
	}
}

func TestTemporalShipmentWorkflows_PassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("frontend unavailable")
	o := NewTemporalShipmentWorkflows(&stubStarter{err: boom})
	_, err := o.CreateShipment(context.Background(), shipmenttypes.CreateShipmentInput{ClientID: 1})
	require.ErrorIs(t, err, boom)
}

func TestTemporalShipmentWorkflows_DistinctCreatesUnderOneTrace(t *testing.T) {
	cluster := &dedupCluster{running: map[string]bool{}}
	o := NewTemporalShipmentWorkflows(cluster)
	ctx := sharedTraceContext()

	first, err := o.CreateShipment(ctx, shipmenttypes.CreateShipmentInput{ClientID: 7, Priority: domain.PriorityLow})
	require.NoError(t, err)
	second, err := o.CreateShipment(ctx, shipmenttypes.CreateShipmentInput{ClientID: 7, Priority: domain.PriorityHigh})
	require.NoError(t, err)

	require.NotEqual(t, first.Entity.ID, second.Entity.ID)
	require.Equal(t, domain.PriorityHigh, second.Entity.Priority)
	require.Len(t, cluster.running, 2)
}

func TestTemporalShipmentWorkflows_AlreadyStartedIsAnError(t *testing.T) {
	starter := &stubStarter{err: serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "req", "run-1")}
	o := NewTemporalShipmentWorkflows(starter)

	_, err := o.CreateShipment(context.Background(), shipmenttypes.CreateShipmentInput{ClientID: 2})
	require.ErrorIs(t, err, ErrCreationAlreadyRunning)
}

func TestTemporalShipmentWorkflows_NotConfigured(t *testing.T) {
	var o *TemporalShipmentWorkflows
	_, err := o.CreateShipment(context.Background(), shipmenttypes.CreateShipmentInput{})
	require.Error(t, err)
}

type anyClient struct{}

func (anyClient) Exists(context.Context, int64) (bool, error) { return true, nil }

func TestInlineShipmentWorkflows_DelegatesToService(t *testing.T) {
	svc := application.NewService(memory.NewRepository(), anyClient{})
	o := NewInlineShipmentWorkflows(svc)

	got, err := o.CreateShipment(context.Background(), shipmenttypes.CreateShipmentInput{ClientID: 8})
	require.NoError(t, err)
	require.True(t, domain.IsTrackingCode(got.Entity.TrackingCode))
	require.Equal(t, domain.StatusPending, got.Entity.Status)
}
