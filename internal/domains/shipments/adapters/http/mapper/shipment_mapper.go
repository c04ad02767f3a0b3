package mapper

import (
	"errors"
	"strings"
	"time"

	shipmenttypes "github.com/udea/couriersync/internal/domains/shipments/application/types"
	"github.com/udea/couriersync/internal/domains/shipments/domain"
)

var errMissingClient = errors.New("clientId is required")

// MutationShipment captures inbound payloads for create/update flows while preserving field presence.
// A trackingCode sent by the caller is read only so it can be rejected on create.
type MutationShipment struct {
	TrackingCode *string `json:"trackingCode,omitempty"`
	ClientID     *int64  `json:"clientId,omitempty"`
	Status       *string `json:"status,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

// Shipment is the HTTP representation returned to callers.
type Shipment struct {
	ID           int64     `json:"id"`
	TrackingCode string    `json:"trackingCode"`
	ClientID     int64     `json:"clientId"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	Observations string    `json:"observations,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// ToCreateInput validates a create payload. Missing status and priority take their defaults.
func ToCreateInput(model MutationShipment) (*shipmenttypes.CreateShipmentInput, error) {
	if model.TrackingCode != nil && strings.TrimSpace(*model.TrackingCode) != "" {
		return nil, domain.ErrTrackingCodeLocked
	}
	if model.ClientID == nil {
		return nil, errMissingClient
	}
	input := &shipmenttypes.CreateShipmentInput{ClientID: *model.ClientID}
	if model.Status != nil && strings.TrimSpace(*model.Status) != "" {
		status, err := domain.ParseStatus(*model.Status)
		if err != nil {
			return nil, err
		}
		input.Status = status
	}
	if model.Priority != nil && strings.TrimSpace(*model.Priority) != "" {
		priority, err := domain.ParsePriority(*model.Priority)
		if err != nil {
			return nil, err
		}
		input.Priority = priority
	}
	if model.Observations != nil {
		input.Observations = *model.Observations
	}
	return input, nil
}

// ToUpdateInput converts a partial payload. Absent fields stay nil so they are left untouched.
// A trackingCode is forwarded only as a rejection: it can never be changed.
func ToUpdateInput(model MutationShipment) (*shipmenttypes.UpdateShipmentInput, error) {
	if model.TrackingCode != nil && strings.TrimSpace(*model.TrackingCode) != "" {
		return nil, domain.ErrTrackingCodeLocked
	}
	input := &shipmenttypes.UpdateShipmentInput{}
	if model.ClientID != nil {
		id := *model.ClientID
		input.ClientID = &id
	}
	if model.Status != nil {
		status, err := domain.ParseStatus(*model.Status)
		if err != nil {
			return nil, err
		}
		input.Status = &status
	}
	if model.Priority != nil {
		priority, err := domain.ParsePriority(*model.Priority)
		if err != nil {
			return nil, err
		}
		input.Priority = &priority
	}
	if model.Observations != nil {
		obs := *model.Observations
		input.Observations = &obs
	}
	return input, nil
}

// FromProjection maps a stored shipment to its transport form.
func FromProjection(p *shipmenttypes.ShipmentProjection) Shipment {
	if p == nil || p.Entity == nil {
		return Shipment{}
	}
	s := p.Entity
	return Shipment{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		ClientID:     s.ClientID,
		Status:       string(s.Status),
		Priority:     string(s.Priority),
		Observations: s.Observations,
		CreatedAt:    p.Metadata.CreatedAt,
		UpdatedAt:    p.Metadata.UpdatedAt,
	}
}

func FromProjectionList(list []*shipmenttypes.ShipmentProjection) []Shipment {
	result := make([]Shipment, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
