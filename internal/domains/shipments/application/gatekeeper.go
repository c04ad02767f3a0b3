package application

import (
	"context"

	"github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/policy"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
	"github.com/udea/couriersync/internal/shared/principal"
)

// Gatekeeper is the entry point used by transports. It authorizes each request
// against freshly loaded state before handing it to the lifecycle manager.
type Gatekeeper struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

// GatekeeperOption customises a Gatekeeper.
type GatekeeperOption func(*Gatekeeper)

// WithWorkflows routes creations through a workflow orchestrator.
func WithWorkflows(workflows ports.WorkflowOrchestrator) GatekeeperOption {
	return func(g *Gatekeeper) {
		g.workflows = workflows
	}
}

// NewGatekeeper wraps the lifecycle manager.
func NewGatekeeper(service ports.Service, opts ...GatekeeperOption) *Gatekeeper {
	g := &Gatekeeper{service: service}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Create registers a shipment on behalf of role.
func (g *Gatekeeper) Create(ctx context.Context, input *types.CreateShipmentInput, role principal.Role) (*types.ShipmentProjection, error) {
	if input == nil {
		return nil, invalidInput("shipment payload is required")
	}
	decision := policy.Authorize(policy.Request{Operation: policy.OperationCreate, Role: role, Requested: input.Status})
	if !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}
	ctx = principal.WithRole(ctx, role)
	if g.workflows != nil {
		result, err := g.workflows.CreateShipment(ctx, *input)
		return result, mapError(err)
	}
	return g.service.CreateShipment(ctx, input)
}

// Update applies patch on behalf of role.
func (g *Gatekeeper) Update(ctx context.Context, id int64, patch *types.UpdateShipmentInput, role principal.Role) (*types.ShipmentProjection, error) {
	ctx = principal.WithRole(ctx, role)
	current, err := g.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return nil, invalidInput("shipment patch is required")
	}
	if requested := patch.RequestedStatus(); requested != "" && !requested.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	if err := authorize(policy.OperationUpdate, role, current.Entity.Status, patch.RequestedStatus()); err != nil {
		return nil, err
	}
	return g.service.Update(ctx, id, patch)
}

// ChangeStatus moves a shipment to status on behalf of role.
func (g *Gatekeeper) ChangeStatus(ctx context.Context, id int64, status domain.Status, role principal.Role, observations string) (*types.ShipmentProjection, error) {
	ctx = principal.WithRole(ctx, role)
	if !status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	current, err := g.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.OperationChangeStatus, role, current.Entity.Status, status); err != nil {
		return nil, err
	}
	return g.service.UpdateStatus(ctx, id, status, observations)
}

// Delete removes a shipment on behalf of role.
func (g *Gatekeeper) Delete(ctx context.Context, id int64, role principal.Role) error {
	ctx = principal.WithRole(ctx, role)
	current, err := g.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(policy.OperationDelete, role, current.Entity.Status, ""); err != nil {
		return err
	}
	return g.service.DeleteByID(ctx, id)
}

// Read returns the shipment or nil when it does not exist.
func (g *Gatekeeper) Read(ctx context.Context, id int64, role principal.Role) (*types.ShipmentProjection, error) {
	if decision := policy.Authorize(policy.Request{Operation: policy.OperationRead, Role: role}); !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}
	return g.service.FindByID(ctx, id)
}

// ReadByTrackingCode returns the shipment or nil when the code is unknown.
func (g *Gatekeeper) ReadByTrackingCode(ctx context.Context, code string, role principal.Role) (*types.ShipmentProjection, error) {
	if decision := policy.Authorize(policy.Request{Operation: policy.OperationRead, Role: role}); !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}
	return g.service.FindByTrackingCode(ctx, code)
}

// List returns every shipment.
func (g *Gatekeeper) List(ctx context.Context, role principal.Role) ([]*types.ShipmentProjection, error) {
	if decision := policy.Authorize(policy.Request{Operation: policy.OperationRead, Role: role}); !decision.Allowed {
		return nil, forbidden(decision.Reason)
	}
	return g.service.List(ctx)
}

func (g *Gatekeeper) load(ctx context.Context, id int64) (*types.ShipmentProjection, error) {
	current, err := g.service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, mapError(ports.ErrNotFound)
	}
	return current, nil
}

func authorize(op policy.Operation, role principal.Role, current, requested domain.Status) error {
	decision := policy.Authorize(policy.Request{
		Operation: op,
		Role:      role,
		Current:   &current,
		Requested: requested,
	})
	if !decision.Allowed {
		return forbidden(decision.Reason)
	}
	return nil
}
