package queries

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

type VerifyQrTokenQueryResponse struct {
	Order          OrderDetailsResponse
	Token          string
	TokenExpiresAt time.Time
	VerifiedBy     string
}

type VerifyQrTokenQueryHandler struct {
	tokens ports.QrTokenRepository
	orders ports.OrderRepository
	clock  ports.Clock
	logger *slog.Logger
}

func NewVerifyQrTokenQueryHandler(
	tokens ports.QrTokenRepository,
	orders ports.OrderRepository,
	clock ports.Clock,
	logger *slog.Logger,
) VerifyQrTokenQueryHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return VerifyQrTokenQueryHandler{
		tokens: tokens,
		orders: orders,
		clock:  clock,
		logger: logger.With("component", "verify-qr-token"),
	}
}

// Handle fails with errs.ErrTokenNotFound or errs.ErrTokenExpired before the
// order is read.
func (h VerifyQrTokenQueryHandler) Handle(ctx context.Context, query VerifyQrTokenQuery) (VerifyQrTokenQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return VerifyQrTokenQueryResponse{}, err
	}

	token, err := h.tokens.Get(ctx, query.token)
	if err != nil {
		return VerifyQrTokenQueryResponse{}, err
	}
	if err = token.CheckUsable(h.clock.Now()); err != nil {
		return VerifyQrTokenQueryResponse{}, err
	}

	salesOrder, err := h.orders.Get(ctx, token.OrderID())
	if err != nil {
		return VerifyQrTokenQueryResponse{}, err
	}

	h.logger.InfoContext(ctx, "qr token verified",
		"order_id", salesOrder.ID().String(),
		"acting_user", query.actingUserID)

	return VerifyQrTokenQueryResponse{
		Order:          NewOrderDetailsResponse(salesOrder),
		Token:          token.Value(),
		TokenExpiresAt: token.ExpiresAt(),
		VerifiedBy:     query.actingUserID,
	}, nil
}
