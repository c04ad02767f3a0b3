// Package kafka publishes shipment lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/udea/couriersync/internal/domains/shipments/domain"
	"github.com/udea/couriersync/internal/domains/shipments/ports"
)

// Producer is the subset of the platform producer used by the publisher.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers ...kafkago.Header) error
}

// Message is the JSON payload written for every event.
type Message struct {
	EventID        string    `json:"eventId"`
	Type           string    `json:"type"`
	ShipmentID     int64     `json:"shipmentId"`
	TrackingCode   string    `json:"trackingCode"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Status         string    `json:"status"`
	Observations   string    `json:"observations,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type Publisher struct {
	producer Producer
	topic    string
	newID    func() string
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher keys messages by tracking code so one shipment's events stay ordered.
func NewPublisher(producer Producer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic, newID: uuid.NewString}
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	msg := Message{
		EventID:        p.newID(),
		Type:           string(event.Type),
		ShipmentID:     event.ShipmentID,
		TrackingCode:   event.TrackingCode,
		PreviousStatus: string(event.PreviousStatus),
		Status:         string(event.Status),
		Observations:   event.Observations,
		OccurredAt:     event.OccurredAt.UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal shipment event")
	}
	key := event.TrackingCode
	if key == "" {
		key = strconv.FormatInt(event.ShipmentID, 10)
	}
	return p.producer.Publish(ctx, p.topic, []byte(key), body,
		kafkago.Header{Key: "event-type", Value: []byte(event.Type)},
		kafkago.Header{Key: "event-id", Value: []byte(msg.EventID)},
	)
}
