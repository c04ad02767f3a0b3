package domain

import "time"

// EventType names a shipment lifecycle event.
type EventType string

const (
	EventShipmentCreated       EventType = "shipment.created"
	EventShipmentUpdated       EventType = "shipment.updated"
	EventShipmentStatusChanged EventType = "shipment.status_changed"
	EventShipmentDeleted       EventType = "shipment.deleted"
)

// Event is emitted after a shipment mutation has been persisted.
type Event struct {
	Type           EventType
	ShipmentID     int64
	TrackingCode   string
	PreviousStatus Status
	Status         Status
	Observations   string
	OccurredAt     time.Time
}
