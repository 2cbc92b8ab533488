package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler moves an order forward on behalf of the
// holder of a QR token. The role is checked before the token is looked up,
// so callers without the capability learn nothing about the token.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory QrTokenUoWFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	clock      ports.Clock
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory QrTokenUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	clock ports.Clock,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisherOrNoop(publisher),
		clock:      clockOrSystem(clock),
	}
}

func (h AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command AdvanceOrderStatusCommand,
) (*order.SalesOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := command.Actor().Authorize(kernel.CapabilityAdvanceStatus); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	token, err := uow.QrTokenRepository().Get(ctx, command.Token())
	if err != nil {
		return nil, err
	}
	if err = token.CheckUsable(h.clock.Now()); err != nil {
		return nil, err
	}

	release, err := h.locker.Acquire(ctx, token.OrderID())
	if err != nil {
		return nil, err
	}
	defer release()

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	salesOrder, err := orderRepo.Get(ctx, token.OrderID())
	if err != nil {
		return nil, err
	}

	target, err := command.TargetFrom(salesOrder.Status())
	if err != nil {
		return nil, err
	}
	if err = salesOrder.AdvanceStatus(target, command.Actor().ID, h.clock.Now()); err != nil {
		return nil, err
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
