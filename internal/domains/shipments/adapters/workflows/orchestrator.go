package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/udea/couriersync/internal/domains/shipments/application"
	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
	shipmentactivities "github.com/udea/couriersync/internal/platform/temporal/activities/shipments"
	shipmentworkflows "github.com/udea/couriersync/internal/platform/temporal/workflows/shipments"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalShipmentWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineShipmentWorkflows)(nil)
)

// WorkflowStarter is the part of the Temporal client used to start workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalShipmentWorkflows starts shipment workflows on a Temporal cluster.
type TemporalShipmentWorkflows struct {
	client    WorkflowStarter
	taskQueue string
}

// NewTemporalShipmentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalShipmentWorkflows(c WorkflowStarter) *TemporalShipmentWorkflows {
	return &TemporalShipmentWorkflows{client: c, taskQueue: shipmentworkflows.ShipmentCreationTaskQueue}
}

// ErrCreationAlreadyRunning is returned when Temporal reports the workflow id as already started.
var ErrCreationAlreadyRunning = errors.New("shipment creation already running")

// CreateShipment runs the creation workflow and waits for its result.
// Every call starts its own execution; requests sharing a trace never share a workflow.
func (o *TemporalShipmentWorkflows) CreateShipment(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*shipmenttypes.ShipmentProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal shipment workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("shipment-creation-%d-%s-%s", input.ClientID, traceComponent, uuid.NewString()),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		shipmentworkflows.ShipmentCreationWorkflow,
		shipmentworkflows.ShipmentCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, fmt.Errorf("%w: %s", ErrCreationAlreadyRunning, options.ID)
		}
		return nil, err
	}
	var projection shipmenttypes.ShipmentProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &projection, nil
}

// InlineShipmentWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineShipmentWorkflows struct {
	service ports.Service
}

// NewInlineShipmentWorkflows wraps the shipments service for synchronous execution.
func NewInlineShipmentWorkflows(service ports.Service) *InlineShipmentWorkflows {
	return &InlineShipmentWorkflows{service: service}
}

// CreateShipment delegates to the application service without durable orchestration.
func (o *InlineShipmentWorkflows) CreateShipment(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*shipmenttypes.ShipmentProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline shipment workflows not configured")
	}
	return o.service.CreateShipment(ctx, &input)
}

func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case shipmentactivities.ErrorTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	case shipmentactivities.ErrorTypeNotFound:
		return fmt.Errorf("%w: %s", application.ErrNotFound, appErr.Message())
	case shipmentactivities.ErrorTypeForbidden:
		return fmt.Errorf("%w: %s", application.ErrForbidden, appErr.Message())
	default:
		return err
	}
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
