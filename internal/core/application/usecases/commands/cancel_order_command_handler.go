package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderResult reports what a cancel did. AlreadyCancelled is set, and
// Released is empty, when the order had been cancelled before.
type CancelOrderResult struct {
	Order            *order.SalesOrder
	AlreadyCancelled bool
	Released         []order.StockMovement
}

type CancelOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	clock ports.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisherOrNoop(publisher),
		clock:      clockOrSystem(clock),
	}
}

// Handle cancels the order and releases the unshipped remainder of every
// item. Repeating it on a cancelled order is a no-op.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (CancelOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CancelOrderResult{}, err
	}
	if err := command.Actor().Authorize(kernel.CapabilityFulfil); err != nil {
		return CancelOrderResult{}, err
	}

	release, err := h.locker.Acquire(ctx, command.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CancelOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	inventory := uow.InventoryStore()

	salesOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	released, err := salesOrder.Cancel(command.Actor().ID, h.clock.Now())
	if errors.Is(err, errs.ErrAlreadyCancelled) {
		return CancelOrderResult{Order: salesOrder, AlreadyCancelled: true}, nil
	}
	if err != nil {
		return CancelOrderResult{}, err
	}

	for _, m := range released {
		if err = inventory.Release(ctx, m.ProductID, m.Quantity); err != nil {
			return CancelOrderResult{}, inventoryFailure(m, err)
		}
	}

	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return CancelOrderResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	publishRecorded(ctx, h.publisher, salesOrder)
	return CancelOrderResult{Order: salesOrder, Released: released}, nil
}
