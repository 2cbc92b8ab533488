package qrtokenrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/qrtoken"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormQrTokenRepository struct {
	db *gorm.DB
}

func NewGormQrTokenRepository(db *gorm.DB) *GormQrTokenRepository {
	return &GormQrTokenRepository{db: db}
}

func (r *GormQrTokenRepository) Add(ctx context.Context, token *qrtoken.Token) error {
	if err := token.Validate(); err != nil {
		return err
	}
	dto := fromDomain(token)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormQrTokenRepository) Get(ctx context.Context, value string) (*qrtoken.Token, error) {
	var dto QrTokenDTO
	if err := r.db.WithContext(ctx).First(&dto, "value = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", errs.ErrTokenNotFound, value)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormQrTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&QrTokenDTO{})
	return result.RowsAffected, result.Error
}
