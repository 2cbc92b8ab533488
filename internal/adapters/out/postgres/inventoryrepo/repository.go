package inventoryrepo

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryStore implements ports.InventoryStore. Counter updates are
// single conditional statements, so concurrent stock-outs of different
// orders never oversell a product.
type GormInventoryStore struct {
	db *gorm.DB
}

func NewGormInventoryStore(db *gorm.DB) *GormInventoryStore {
	return &GormInventoryStore{db: db}
}

func (s *GormInventoryStore) Decrement(ctx context.Context, productID string, quantity int) error {
	if err := validate(productID, quantity); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&ProductStockDTO{}).
		Where("product_id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return errs.NewInventoryUnavailableErrorWithCause(productID, quantity, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewInventoryUnavailableErrorWithCause(productID, quantity,
			errors.New("unknown product or insufficient stock"))
	}
	return nil
}

func (s *GormInventoryStore) Release(ctx context.Context, productID string, quantity int) error {
	if err := validate(productID, quantity); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&ProductStockDTO{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return errs.NewInventoryUnavailableErrorWithCause(productID, quantity, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewInventoryUnavailableErrorWithCause(productID, quantity,
			errors.New("unknown product"))
	}
	return nil
}

// Set overwrites the on-hand quantity of a product, creating it if needed.
func (s *GormInventoryStore) Set(ctx context.Context, productID string, quantity int) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	dto := ProductStockDTO{ProductID: productID, Quantity: quantity}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(&dto).Error
}

// Get returns the on-hand quantity of a product.
func (s *GormInventoryStore) Get(ctx context.Context, productID string) (int, error) {
	var dto ProductStockDTO
	err := s.db.WithContext(ctx).First(&dto, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("product stock", productID)
		}
		return 0, err
	}
	return dto.Quantity, nil
}

func validate(productID string, quantity int) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}
