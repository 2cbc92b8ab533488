package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDetailsResponse is the full view of one order, including who last
// confirmed it and the remaining quantity of every line.
type OrderDetailsResponse struct {
	ID                    kernel.UUID
	OrderReference        string
	CustomerName          string
	Destination           string
	Status                order.Status
	TotalOrderedQuantity  int
	TotalApprovedQuantity int
	TotalAmount           decimal.Decimal
	OrderDate             time.Time
	EstimatedDeliveryDate *time.Time
	DeliveryDate          *time.Time
	ConfirmedBy           string
	LastUpdate            *time.Time
	Items                 []ItemDetailsResponse
}

type ItemDetailsResponse struct {
	ID                kernel.UUID
	ProductID         string
	ProductName       string
	ProductCategory   string
	Quantity          int
	ApprovedQuantity  int
	RemainingQuantity int
	UnitPrice         decimal.Decimal
	Amount            decimal.Decimal
}

// NewOrderDetailsResponse snapshots an aggregate. Command results are
// rendered through it as well, so callers can re-render without a second
// round trip.
func NewOrderDetailsResponse(o *order.SalesOrder) OrderDetailsResponse {
	items := make([]ItemDetailsResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDetailsResponse{
			ID:                item.ID(),
			ProductID:         item.ProductID(),
			ProductName:       item.ProductName(),
			ProductCategory:   item.ProductCategory(),
			Quantity:          item.Quantity(),
			ApprovedQuantity:  item.ApprovedQuantity(),
			RemainingQuantity: item.Remaining(),
			UnitPrice:         item.UnitPrice(),
			Amount:            item.Amount(),
		})
	}

	return OrderDetailsResponse{
		ID:                    o.ID(),
		OrderReference:        o.Reference(),
		CustomerName:          o.CustomerName(),
		Destination:           o.Destination(),
		Status:                o.Status(),
		TotalOrderedQuantity:  o.TotalOrderedQuantity(),
		TotalApprovedQuantity: o.TotalApprovedQuantity(),
		TotalAmount:           o.TotalAmount(),
		OrderDate:             o.OrderDate(),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate(),
		DeliveryDate:          o.DeliveryDate(),
		ConfirmedBy:           o.ConfirmedBy(),
		LastUpdate:            o.LastUpdate(),
		Items:                 items,
	}
}
