// Package orderrepo persists SalesOrder aggregates in the sales_orders and
// sales_order_items tables. The order row carries denormalized totals so the
// list and metrics queries never join the items.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesOrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderReference        string          `gorm:"size:64;not null;uniqueIndex"`
	CustomerName          string          `gorm:"size:255;not null;index"`
	Destination           string          `gorm:"size:255;not null"`
	Status                string          `gorm:"size:32;not null;index"`
	TotalOrderedQuantity  int             `gorm:"not null"`
	TotalApprovedQuantity int             `gorm:"not null"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OrderDate             time.Time       `gorm:"not null;index"`
	EstimatedDeliveryDate *time.Time      `gorm:"index"`
	DeliveryDate          *time.Time
	ConfirmedBy           string `gorm:"size:255"`
	LastUpdate            *time.Time
	Items                 []SalesOrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (SalesOrderDTO) TableName() string {
	return "sales_orders"
}

// SalesOrderItemDTO keeps the placement order of lines in Position.
type SalesOrderItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	Position         int             `gorm:"not null"`
	ProductID        string          `gorm:"size:64;not null;uniqueIndex:idx_order_product"`
	ProductName      string          `gorm:"size:255"`
	ProductCategory  string          `gorm:"size:255"`
	Quantity         int             `gorm:"not null"`
	ApprovedQuantity int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (SalesOrderItemDTO) TableName() string {
	return "sales_order_items"
}

func fromDomain(o *order.SalesOrder) SalesOrderDTO {
	items := make([]SalesOrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, SalesOrderItemDTO{
			ID:               item.ID().Google(),
			OrderID:          o.ID().Google(),
			Position:         i,
			ProductID:        item.ProductID(),
			ProductName:      item.ProductName(),
			ProductCategory:  item.ProductCategory(),
			Quantity:         item.Quantity(),
			ApprovedQuantity: item.ApprovedQuantity(),
			UnitPrice:        item.UnitPrice(),
		})
	}

	return SalesOrderDTO{
		ID:                    o.ID().Google(),
		OrderReference:        o.Reference(),
		CustomerName:          o.CustomerName(),
		Destination:           o.Destination(),
		Status:                o.Status().String(),
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

// toDomain expects dto.Items sorted by Position.
func toDomain(dto SalesOrderDTO) (*order.SalesOrder, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromGoogle(itemDTO.ID)
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.RestoreItem(
			itemID,
			itemDTO.ProductID,
			itemDTO.ProductName,
			itemDTO.ProductCategory,
			itemDTO.Quantity,
			itemDTO.ApprovedQuantity,
			itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreSalesOrder(order.State{
		ID:                    id,
		Reference:             dto.OrderReference,
		CustomerName:          dto.CustomerName,
		Destination:           dto.Destination,
		Status:                status,
		OrderDate:             dto.OrderDate,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
		DeliveryDate:          dto.DeliveryDate,
		ConfirmedBy:           dto.ConfirmedBy,
		LastUpdate:            dto.LastUpdate,
		Items:                 items,
	})
}
