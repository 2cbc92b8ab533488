package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type namedPublisher struct {
	name      string
	publisher ports.OrderEventPublisher
}

// Fanout publishes to every registered publisher, even when an earlier one
// fails. Failures are logged here and also returned joined.
type Fanout struct {
	publishers []namedPublisher
	logger     *slog.Logger
}

func NewFanout(logger *slog.Logger) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fanout{logger: logger.With("component", "event-fanout")}
}

// Add registers publisher under name; nil publishers are skipped.
func (f *Fanout) Add(name string, publisher ports.OrderEventPublisher) *Fanout {
	if publisher != nil {
		f.publishers = append(f.publishers, namedPublisher{name: name, publisher: publisher})
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, events ...order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	var errList []error
	for _, p := range f.publishers {
		if err := p.publisher.Publish(ctx, events...); err != nil {
			f.logger.WarnContext(ctx, "failed to publish order events",
				"publisher", p.name,
				"events", len(events),
				"order_id", events[0].OrderID.String(),
				"error", err)
			errList = append(errList, fmt.Errorf("%s: %w", p.name, err))
		}
	}
	return errors.Join(errList...)
}
