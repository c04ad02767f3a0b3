package types

import "github.com/udea/couriersync/internal/domains/shipments/domain"

// CreateShipmentInput carries the fields accepted when registering a shipment.
// The tracking code is always generated and never accepted from callers.
type CreateShipmentInput struct {
	ClientID     int64
	Status       domain.Status
	Priority     domain.Priority
	Observations string
}

// UpdateShipmentInput is a partial update; nil fields are left untouched.
type UpdateShipmentInput struct {
	ClientID     *int64
	Status       *domain.Status
	Priority     *domain.Priority
	Observations *string
}

// RequestedStatus returns the status the patch asks for, or empty when it leaves status alone.
func (in *UpdateShipmentInput) RequestedStatus() domain.Status {
	if in == nil || in.Status == nil {
		return ""
	}
	return *in.Status
}

// ShipmentIdentifier addresses a single shipment.
type ShipmentIdentifier struct {
	ID int64
}
