package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultUrgentWindow is how far ahead an estimated delivery makes an order urgent.
const DefaultUrgentWindow = 48 * time.Hour

type GetOrderMetricsQueryHandler struct {
	db           *gorm.DB
	clock        ports.Clock
	urgentWindow time.Duration
}

func NewGetOrderMetricsQueryHandler(db *gorm.DB, clock ports.Clock, urgentWindow time.Duration) GetOrderMetricsQueryHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if urgentWindow <= 0 {
		urgentWindow = DefaultUrgentWindow
	}
	return GetOrderMetricsQueryHandler{db: db, clock: clock, urgentWindow: urgentWindow}
}

func (h GetOrderMetricsQueryHandler) Handle(ctx context.Context, query GetOrderMetricsQuery) (GetOrderMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderMetricsQueryResponse{}, err
	}

	response := GetOrderMetricsQueryResponse{ByStatus: make(map[order.Status]int64)}
	for _, s := range order.Statuses() {
		response.ByStatus[s] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM sales_orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetOrderMetricsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int64
		if err = rows.Scan(&name, &count); err != nil {
			return GetOrderMetricsQueryResponse{}, err
		}
		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return GetOrderMetricsQueryResponse{}, parseErr
		}
		response.ByStatus[status] = count
		response.Total += count
	}
	if err = rows.Err(); err != nil {
		return GetOrderMetricsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).
		Table("sales_orders").
		Scopes(urgentScope(h.clock.Now(), h.urgentWindow)).
		Count(&response.Urgent).Error
	if err != nil {
		return GetOrderMetricsQueryResponse{}, err
	}
	return response, nil
}

// urgentScope keeps live orders due within window of now, overdue included.
func urgentScope(now time.Time, window time.Duration) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("status NOT IN ?", []string{
				order.Delivered.String(), order.Completed.String(), order.Cancelled.String(),
			}).
			Where("estimated_delivery_date IS NOT NULL AND estimated_delivery_date <= ?", now.Add(window))
	}
}
