// Package notify delivers committed order changes to the outside world:
// a Kafka topic for downstream services, a WebSocket feed for the
// dashboard and Prometheus counters. All publishers are best effort.
package notify

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// OrderStatusChangedMessage is the wire form shared by Kafka and WebSocket.
type OrderStatusChangedMessage struct {
	EventID        string    `json:"eventId"`
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	OrderReference string    `json:"orderReference"`
	Previous       string    `json:"previous"`
	Current        string    `json:"current"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func newMessage(event order.StatusChanged) OrderStatusChangedMessage {
	return OrderStatusChangedMessage{
		EventID:        event.ID.String(),
		Type:           string(event.Type),
		OrderID:        event.OrderID.String(),
		OrderReference: event.OrderReference,
		Previous:       event.Previous.String(),
		Current:        event.Current.String(),
		Actor:          event.Actor,
		OccurredAt:     event.OccurredAt.UTC(),
	}
}

func encode(event order.StatusChanged) ([]byte, error) {
	return json.Marshal(newMessage(event))
}
