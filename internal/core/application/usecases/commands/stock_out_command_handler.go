package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// StockOutCommandHandler validates a shipment against the full ledger,
// applies it and decrements inventory for every shipped line in the same
// transaction.
type StockOutCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	clock      ports.Clock
}

func NewStockOutCommandHandler(
	uowFactory FulfillmentUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	clock ports.Clock,
) StockOutCommandHandler {
	return StockOutCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisherOrNoop(publisher),
		clock:      clockOrSystem(clock),
	}
}

// Handle returns the order as committed. On any error nothing is persisted.
func (h StockOutCommandHandler) Handle(ctx context.Context, command StockOutCommand) (*order.SalesOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := command.Actor().Authorize(kernel.CapabilityFulfil); err != nil {
		return nil, err
	}

	release, err := h.locker.Acquire(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	inventory := uow.InventoryStore()

	salesOrder, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	movements, err := salesOrder.StockOut(command.Allocation(), command.Actor().ID, h.clock.Now())
	if err != nil {
		return nil, err
	}

	for _, m := range movements {
		if err = inventory.Decrement(ctx, m.ProductID, m.Quantity); err != nil {
			return nil, inventoryFailure(m, err)
		}
	}

	if err = orderRepo.Update(ctx, salesOrder); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishRecorded(ctx, h.publisher, salesOrder)
	return salesOrder, nil
}

func inventoryFailure(m order.StockMovement, err error) error {
	if errors.Is(err, errs.ErrInventoryUnavailable) {
		return err
	}
	return errs.NewInventoryUnavailableErrorWithCause(m.ProductID, m.Quantity, err)
}
