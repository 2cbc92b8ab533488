package queries

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db           *gorm.DB
	clock        ports.Clock
	urgentWindow time.Duration
}

func NewListOrdersQueryHandler(db *gorm.DB, clock ports.Clock, urgentWindow time.Duration) ListOrdersQueryHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if urgentWindow <= 0 {
		urgentWindow = DefaultUrgentWindow
	}
	return ListOrdersQueryHandler{db: db, clock: clock, urgentWindow: urgentWindow}
}

type orderSummaryRow struct {
	ID                    uuid.UUID
	OrderReference        string
	CustomerName          string
	Destination           string
	Status                string
	TotalOrderedQuantity  int
	TotalApprovedQuantity int
	TotalAmount           decimal.Decimal
	OrderDate             time.Time
	EstimatedDeliveryDate *time.Time
	DeliveryDate          *time.Time
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (Page[OrderSummaryResponse], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderSummaryResponse]{}, err
	}
	now := h.clock.Now()
	filter := h.filterScope(query, now)

	var total int64
	err := h.db.WithContext(ctx).Table("sales_orders").Scopes(filter).Count(&total).Error
	if err != nil {
		return Page[OrderSummaryResponse]{}, err
	}

	var rows []orderSummaryRow
	err = h.db.WithContext(ctx).
		Table("sales_orders").
		Scopes(filter).
		Order(query.page.orderClause()).
		Offset(query.page.offset()).
		Limit(query.page.size).
		Find(&rows).Error
	if err != nil {
		return Page[OrderSummaryResponse]{}, err
	}

	content := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		summary, convErr := h.toSummary(row, now)
		if convErr != nil {
			return Page[OrderSummaryResponse]{}, convErr
		}
		content = append(content, summary)
	}
	return newPage(content, total, query.page), nil
}

func (h ListOrdersQueryHandler) filterScope(query ListOrdersQuery, now time.Time) func(*gorm.DB) *gorm.DB {
	switch query.mode {
	case listUrgent:
		return urgentScope(now, h.urgentWindow)
	case listSearch:
		pattern := "%" + escapeLike(query.text) + "%"
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("order_reference ILIKE ? OR customer_name ILIKE ? OR destination ILIKE ?",
				pattern, pattern, pattern)
		}
	case listByStatus:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", query.status.String())
		}
	default:
		return func(db *gorm.DB) *gorm.DB { return db }
	}
}

func (h ListOrdersQueryHandler) toSummary(row orderSummaryRow, now time.Time) (OrderSummaryResponse, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return OrderSummaryResponse{}, err
	}
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return OrderSummaryResponse{}, err
	}

	urgent := false
	if row.EstimatedDeliveryDate != nil && !status.IsTerminal() && status != order.Delivered {
		urgent = !row.EstimatedDeliveryDate.After(now.Add(h.urgentWindow))
	}

	return OrderSummaryResponse{
		ID:                    id,
		OrderReference:        row.OrderReference,
		CustomerName:          row.CustomerName,
		Destination:           row.Destination,
		Status:                status,
		TotalOrderedQuantity:  row.TotalOrderedQuantity,
		TotalApprovedQuantity: row.TotalApprovedQuantity,
		TotalAmount:           row.TotalAmount,
		OrderDate:             row.OrderDate,
		EstimatedDeliveryDate: row.EstimatedDeliveryDate,
		DeliveryDate:          row.DeliveryDate,
		Urgent:                urgent,
	}, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
