package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.SalesOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the columns a fulfillment operation can change. Item
// identity, quantities and prices are immutable after placement.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.SalesOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&SalesOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":                  dto.Status,
			"total_approved_quantity": dto.TotalApprovedQuantity,
			"delivery_date":           dto.DeliveryDate,
			"confirmed_by":            dto.ConfirmedBy,
			"last_update":             dto.LastUpdate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sales order", aggregate.ID().String())
	}

	for _, item := range dto.Items {
		err := db.Model(&SalesOrderItemDTO{}).
			Where("id = ? AND order_id = ?", item.ID, dto.ID).
			Update("approved_quantity", item.ApprovedQuantity).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.SalesOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SalesOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Google()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sales order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
