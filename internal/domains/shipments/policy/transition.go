// Package policy decides which shipment operations a role may perform.
// Every function here is pure: callers pass the persisted state in.
package policy

import (
	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/shared/principal"
)

type transition struct {
	from domain.Status
	to   domain.Status
}

// driverTransitions is the forward operational path a driver may follow.
var driverTransitions = map[transition]struct{}{
	{from: domain.StatusPending, to: domain.StatusInTransit}:   {},
	{from: domain.StatusInTransit, to: domain.StatusDelivered}: {},
}

// IsTransitionAllowed reports whether role may move a shipment from current to requested.
// Unknown statuses and unmapped pairs are denied. ADMIN may force any move between
// known statuses, including leaving a terminal state and re-applying the same status.
func IsTransitionAllowed(current, requested domain.Status, role principal.Role) bool {
	if !current.Valid() || !requested.Valid() {
		return false
	}
	switch role {
	case principal.RoleAdmin:
		return true
	case principal.RoleDriver:
		_, ok := driverTransitions[transition{from: current, to: requested}]
		return ok
	case principal.RoleOperator:
		return false
	default:
		return false
	}
}

// AllowedTransitions lists the statuses role may move a shipment to from current.
func AllowedTransitions(current domain.Status, role principal.Role) []domain.Status {
	var allowed []domain.Status
	for _, candidate := range domain.Statuses() {
		if IsTransitionAllowed(current, candidate, role) {
			allowed = append(allowed, candidate)
		}
	}
	return allowed
}
