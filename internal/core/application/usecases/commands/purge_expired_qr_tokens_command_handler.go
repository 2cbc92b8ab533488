package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type PurgeExpiredQrTokensCommandHandler struct {
	uowFactory QrTokenUoWFactory
	clock      ports.Clock
}

func NewPurgeExpiredQrTokensCommandHandler(uowFactory QrTokenUoWFactory, clock ports.Clock) PurgeExpiredQrTokensCommandHandler {
	return PurgeExpiredQrTokensCommandHandler{uowFactory: uowFactory, clock: clockOrSystem(clock)}
}

// Handle returns the number of tokens removed.
func (h PurgeExpiredQrTokensCommandHandler) Handle(ctx context.Context, command PurgeExpiredQrTokensCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.QrTokenRepository().DeleteExpiredBefore(ctx, h.clock.Now().Add(-command.Retention()))
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
