package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderLocker serialises mutations of a single order.
type OrderLocker interface {
	// Acquire returns a release func once the caller holds the order, or
	// errs.ErrOrderBusy when another mutation keeps it past the wait bound.
	Acquire(ctx context.Context, orderID kernel.UUID) (func(), error)
}
