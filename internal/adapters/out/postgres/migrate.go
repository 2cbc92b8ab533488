package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/qrtokenrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&orderrepo.SalesOrderDTO{},
		&orderrepo.SalesOrderItemDTO{},
		&inventoryrepo.ProductStockDTO{},
		&qrtokenrepo.QrTokenDTO{},
	)
}
