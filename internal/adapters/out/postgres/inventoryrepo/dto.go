// Package inventoryrepo keeps the per-product stock counters that stock-out
// decrements and cancellation replenishes.
package inventoryrepo

import "time"

type ProductStockDTO struct {
	ProductID string `gorm:"size:64;primaryKey"`
	Quantity  int    `gorm:"not null;check:chk_product_stocks_quantity,quantity >= 0"`
	UpdatedAt time.Time
}

func (ProductStockDTO) TableName() string {
	return "product_stocks"
}
