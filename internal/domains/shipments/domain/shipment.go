package domain

import (
	"errors"
	"strings"
)

// Status enumerates shipment progression.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Priority is informational and carries no transition rules.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var (
	ErrInvalidClientID     = errors.New("client id must be greater than zero")
	ErrInvalidStatus       = errors.New("shipment status is invalid")
	ErrInvalidPriority     = errors.New("shipment priority is invalid")
	ErrInvalidTrackingCode = errors.New("tracking code is invalid")
	ErrTrackingCodeLocked  = errors.New("tracking code cannot be changed once assigned")
)

// Shipment models a parcel moving through the courier network.
type Shipment struct {
	ID           int64
	TrackingCode string
	ClientID     int64
	Status       Status
	Priority     Priority
	Observations string
}

// NewShipment validates and constructs a shipment that has not been persisted yet.
// An empty status defaults to PENDING and an empty priority to MEDIUM.
func NewShipment(clientID int64, status Status, priority Priority, observations string) (*Shipment, error) {
	if status == "" {
		status = StatusPending
	}
	if priority == "" {
		priority = PriorityMedium
	}
	shipment := &Shipment{
		ClientID:     clientID,
		Status:       status,
		Priority:     priority,
		Observations: strings.TrimSpace(observations),
	}
	if err := shipment.Validate(); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Validate enforces invariants on the aggregate.
func (s *Shipment) Validate() error {
	if s.ClientID <= 0 {
		return ErrInvalidClientID
	}
	if !s.Status.Valid() {
		return ErrInvalidStatus
	}
	if !s.Priority.Valid() {
		return ErrInvalidPriority
	}
	if s.TrackingCode != "" && !IsTrackingCode(s.TrackingCode) {
		return ErrInvalidTrackingCode
	}
	return nil
}

// AssignTrackingCode sets the tracking code exactly once.
func (s *Shipment) AssignTrackingCode(code string) error {
	if s.TrackingCode != "" {
		return ErrTrackingCodeLocked
	}
	if !IsTrackingCode(code) {
		return ErrInvalidTrackingCode
	}
	s.TrackingCode = code
	return nil
}

// IsPending reports whether the shipment is still awaiting pickup.
func (s *Shipment) IsPending() bool {
	return s != nil && s.Status == StatusPending
}

// Clone returns a detached copy.
func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no operational transition leaves this state.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParsePriority resolves a priority name case-insensitively.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.ToUpper(strings.TrimSpace(value)))
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// Statuses lists every known status.
func Statuses() []Status {
	return []Status{StatusPending, StatusInTransit, StatusDelivered, StatusCancelled}
}
