package policy

import (
	"fmt"

	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

// Operation is a kind of shipment request.
type Operation string

const (
	OperationCreate       Operation = "create"
	OperationRead         Operation = "read"
	OperationUpdate       Operation = "update"
	OperationDelete       Operation = "delete"
	OperationChangeStatus Operation = "changeStatus"
)

// Request is the input of a single authorization decision.
type Request struct {
	Operation Operation
	Role      principal.Role
	// Current is the persisted status. Required for update, delete and changeStatus.
	Current *domain.Status
	// Requested is the initial status on create and the target status on
	// update or changeStatus. Empty on update means the status is left alone.
	Requested domain.Status
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Authorize evaluates req. Anything not explicitly allowed is denied.
func Authorize(req Request) Decision {
	if !req.Role.Valid() {
		return deny("role %q is not recognised", req.Role)
	}
	switch req.Operation {
	case OperationCreate:
		return authorizeCreate(req)
	case OperationRead:
		return allow()
	case OperationUpdate:
		return authorizeUpdate(req)
	case OperationDelete:
		return authorizeDelete(req)
	case OperationChangeStatus:
		return authorizeChangeStatus(req)
	default:
		return deny("operation %q is not recognised", req.Operation)
	}
}

func authorizeCreate(req Request) Decision {
	initial := req.Requested
	if initial == "" {
		initial = domain.StatusPending
	}
	switch req.Role {
	case principal.RoleAdmin:
		return allow()
	case principal.RoleOperator:
		if initial == domain.StatusPending {
			return allow()
		}
		return deny("operator may only create shipments in status %s", domain.StatusPending)
	default:
		return deny("role %s may not create shipments", req.Role)
	}
}

func authorizeUpdate(req Request) Decision {
	if req.Current == nil {
		return deny("current shipment state is required")
	}
	current := *req.Current
	switch req.Role {
	case principal.RoleAdmin:
	case principal.RoleOperator:
		if current != domain.StatusPending {
			return deny("operator may only edit shipments in status %s, shipment is %s", domain.StatusPending, current)
		}
	default:
		return deny("role %s may not edit shipments", req.Role)
	}
	if req.Requested != "" && req.Requested != current && !IsTransitionAllowed(current, req.Requested, req.Role) {
		return deny("role %s may not move a shipment from %s to %s", req.Role, current, req.Requested)
	}
	return allow()
}

func authorizeDelete(req Request) Decision {
	if req.Current == nil {
		return deny("current shipment state is required")
	}
	switch req.Role {
	case principal.RoleAdmin:
		return allow()
	case principal.RoleOperator:
		if *req.Current == domain.StatusPending {
			return allow()
		}
		return deny("operator may only delete shipments in status %s, shipment is %s", domain.StatusPending, *req.Current)
	default:
		return deny("role %s may not delete shipments", req.Role)
	}
}

func authorizeChangeStatus(req Request) Decision {
	if req.Current == nil {
		return deny("current shipment state is required")
	}
	switch req.Role {
	case principal.RoleAdmin, principal.RoleDriver:
		if IsTransitionAllowed(*req.Current, req.Requested, req.Role) {
			return allow()
		}
		return deny("role %s may not move a shipment from %s to %s", req.Role, *req.Current, req.Requested)
	default:
		return deny("role %s may not change shipment status", req.Role)
	}
}
