package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// publishRecorded hands the aggregate's recorded events to the publisher.
// Called only after a successful commit; delivery failures are reported by
// the publisher itself and never fail the command.
func publishRecorded(ctx context.Context, publisher ports.OrderEventPublisher, aggregate *order.SalesOrder) {
	events := aggregate.PullEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(context.WithoutCancel(ctx), events...)
}

// noopPublisher is used when a handler is built without a publisher.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ...order.StatusChanged) error {
	return nil
}

func publisherOrNoop(p ports.OrderEventPublisher) ports.OrderEventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func clockOrSystem(c ports.Clock) ports.Clock {
	if c == nil {
		return ports.SystemClock{}
	}
	return c
}
