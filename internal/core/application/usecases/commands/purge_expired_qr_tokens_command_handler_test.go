package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredQrTokensCommandHandler_Handle(t *testing.T) {
	t.Run("should delete tokens expired before the retention cutoff", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewPurgeExpiredQrTokensCommand(24 * time.Hour)
		require.NoError(t, err)

		tokenRepo := new(MockQrTokenRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("QrTokenRepository").Return(tokenRepo).Once(),
			tokenRepo.On("DeleteExpiredBefore", ctx, now.Add(-24*time.Hour)).Return(int64(4), nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewPurgeExpiredQrTokensCommandHandler(MockQrTokenUoWFactory{uow}, fixedClock{now})
		removed, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(4), removed)
		uow.AssertExpectations(t)
	})

	t.Run("should not commit when the delete fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewPurgeExpiredQrTokensCommand(0)
		require.NoError(t, err)

		tokenRepo := new(MockQrTokenRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("QrTokenRepository").Return(tokenRepo).Once()
		tokenRepo.On("DeleteExpiredBefore", ctx, now).Return(int64(0), errors.New("db down")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := commands.NewPurgeExpiredQrTokensCommandHandler(MockQrTokenUoWFactory{uow}, fixedClock{now})
		_, err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject negative retention", func(t *testing.T) {
		_, err := commands.NewPurgeExpiredQrTokensCommand(-time.Minute)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
