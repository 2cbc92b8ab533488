package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderEventPublisher delivers committed order changes to interested parties.
// Delivery is best effort.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChanged) error
}
