package ports

import "context"

// InventoryStore owns the per-product stock counters. Only the fulfillment
// commands mutate them.
type InventoryStore interface {
	// Decrement removes shipped stock. It fails with
	// errs.ErrInventoryUnavailable when the product is unknown or the
	// counter would go negative.
	Decrement(ctx context.Context, productID string, quantity int) error

	// Release returns unshipped stock of a cancelled order.
	Release(ctx context.Context, productID string, quantity int) error
}
