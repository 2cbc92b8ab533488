package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/qrtoken"
	"fulfillment/internal/core/ports"
)

// IssueQrTokenCommandHandler creates a new token for an existing order.
// Earlier tokens of the same order stay valid until they expire.
type IssueQrTokenCommandHandler struct {
	uowFactory QrTokenUoWFactory
	ttlMinutes int
	clock      ports.Clock
}

func NewIssueQrTokenCommandHandler(uowFactory QrTokenUoWFactory, ttlMinutes int, clock ports.Clock) IssueQrTokenCommandHandler {
	if ttlMinutes <= 0 {
		ttlMinutes = qrtoken.DefaultTTLMinutes
	}
	return IssueQrTokenCommandHandler{uowFactory: uowFactory, ttlMinutes: ttlMinutes, clock: clockOrSystem(clock)}
}

func (h IssueQrTokenCommandHandler) Handle(ctx context.Context, command IssueQrTokenCommand) (*qrtoken.Token, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := command.Actor().Authorize(kernel.CapabilityIssueQr); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.OrderRepository().Get(ctx, command.OrderID()); err != nil {
		return nil, err
	}

	token, err := qrtoken.NewToken(command.OrderID(), h.clock.Now(), h.ttlMinutes)
	if err != nil {
		return nil, err
	}
	if err = uow.QrTokenRepository().Add(ctx, token); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return token, nil
}
