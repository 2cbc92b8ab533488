package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/qrtoken"
)

type QrTokenRepository interface {
	Add(ctx context.Context, token *qrtoken.Token) error

	// Get returns errs.ErrTokenNotFound for unknown values.
	Get(ctx context.Context, value string) (*qrtoken.Token, error)

	// DeleteExpiredBefore removes tokens that expired before cutoff and
	// reports how many were removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
