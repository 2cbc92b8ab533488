package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

type GetQrTokenQueryResponse struct {
	Token     string
	OrderID   string
	ExpiresAt time.Time
}

type GetQrTokenQueryHandler struct {
	tokens ports.QrTokenRepository
	clock  ports.Clock
}

func NewGetQrTokenQueryHandler(tokens ports.QrTokenRepository, clock ports.Clock) GetQrTokenQueryHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return GetQrTokenQueryHandler{tokens: tokens, clock: clock}
}

func (h GetQrTokenQueryHandler) Handle(ctx context.Context, query GetQrTokenQuery) (GetQrTokenQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetQrTokenQueryResponse{}, err
	}
	token, err := h.tokens.Get(ctx, query.token)
	if err != nil {
		return GetQrTokenQueryResponse{}, err
	}
	if err = token.CheckUsable(h.clock.Now()); err != nil {
		return GetQrTokenQueryResponse{}, err
	}
	return GetQrTokenQueryResponse{
		Token:     token.Value(),
		OrderID:   token.OrderID().String(),
		ExpiresAt: token.ExpiresAt(),
	}, nil
}
