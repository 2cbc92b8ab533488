package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetOrderDetailsQueryHandler loads the order aggregate; the item breakdown
// needs every line, which the repository already assembles.
type GetOrderDetailsQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetOrderDetailsQueryHandler(orders ports.OrderRepository) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{orders: orders}
}

func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailsResponse{}, err
	}
	salesOrder, err := h.orders.Get(ctx, query.orderID)
	if err != nil {
		return OrderDetailsResponse{}, err
	}
	return NewOrderDetailsResponse(salesOrder), nil
}
