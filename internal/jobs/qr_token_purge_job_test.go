package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPurgeHandler struct {
	mock.Mock
}

func (m *MockPurgeHandler) Handle(ctx context.Context, command commands.PurgeExpiredQrTokensCommand) (int64, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(int64), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQrTokenPurgeJob_Run(t *testing.T) {
	t.Run("should purge with the configured retention", func(t *testing.T) {
		handler := &MockPurgeHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.PurgeExpiredQrTokensCommand) bool {
			return c.Retention() == 6*time.Hour
		})).Return(int64(4), nil).Once()

		job := NewQrTokenPurgeJob(handler, "", 6*time.Hour, quietLogger())
		job.Run()

		handler.AssertExpectations(t)
	})

	t.Run("should swallow handler failures", func(t *testing.T) {
		handler := &MockPurgeHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		job := NewQrTokenPurgeJob(handler, "", time.Hour, quietLogger())

		assert.NotPanics(t, job.Run)
		handler.AssertExpectations(t)
	})
}

func TestQrTokenPurgeJob_Start(t *testing.T) {
	t.Run("should default the schedule", func(t *testing.T) {
		job := NewQrTokenPurgeJob(&MockPurgeHandler{}, "", time.Hour, quietLogger())

		assert.Equal(t, DefaultQrTokenPurgeSchedule, job.schedule)
	})

	t.Run("should reject an invalid schedule", func(t *testing.T) {
		job := NewQrTokenPurgeJob(&MockPurgeHandler{}, "every hour", time.Hour, quietLogger())

		require.Error(t, job.Start())
	})

	t.Run("should start and stop", func(t *testing.T) {
		manager := NewJobManager(NewQrTokenPurgeJob(&MockPurgeHandler{}, "0 0 0 1 1 *", time.Hour, quietLogger()))

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})
}
