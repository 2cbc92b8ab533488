// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, inventory, locking and notifications.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository stores SalesOrder aggregates together with their items.
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.SalesOrder) error

	// Update persists the mutable state of an existing order: status,
	// approved quantities, delivery and confirmation stamps. Returns
	// errs.ErrObjectNotFound when the order does not exist.
	Update(ctx context.Context, aggregate *order.SalesOrder) error

	// Get loads an order with all items in placement order.
	Get(ctx context.Context, id kernel.UUID) (*order.SalesOrder, error)
}
