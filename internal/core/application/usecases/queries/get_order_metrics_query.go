package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderMetricsQueryIsNotConstructed = errors.New(
	"GetOrderMetricsQuery must be created via NewGetOrderMetricsQuery constructor",
)

// GetOrderMetricsQuery counts orders per status for the dashboard header.
type GetOrderMetricsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderMetricsQuery() GetOrderMetricsQuery {
	return GetOrderMetricsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderMetricsQueryIsNotConstructed)
}

// GetOrderMetricsQueryResponse has an entry for every status, zero included.
type GetOrderMetricsQueryResponse struct {
	Total    int64
	Urgent   int64
	ByStatus map[order.Status]int64
}
