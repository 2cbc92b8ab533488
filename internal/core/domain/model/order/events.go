package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventStockedOut     EventType = "order.stocked_out"
	EventCancelled      EventType = "order.cancelled"
	EventStatusAdvanced EventType = "order.status_advanced"
)

// StatusChanged is recorded by every successful mutation of a SalesOrder and
// published once the mutation is committed.
type StatusChanged struct {
	ID             kernel.UUID
	Type           EventType
	OrderID        kernel.UUID
	OrderReference string
	Previous       Status
	Current        Status
	Actor          string
	OccurredAt     time.Time
}
