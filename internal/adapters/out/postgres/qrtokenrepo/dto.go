// Package qrtokenrepo persists QR tokens keyed by their value.
package qrtokenrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/qrtoken"

	"github.com/google/uuid"
)

type QrTokenDTO struct {
	Value      string    `gorm:"size:64;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IssuedAt   time.Time `gorm:"not null"`
	TTLMinutes int       `gorm:"column:ttl_minutes;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

func (QrTokenDTO) TableName() string {
	return "qr_tokens"
}

func fromDomain(t *qrtoken.Token) QrTokenDTO {
	return QrTokenDTO{
		Value:      t.Value(),
		OrderID:    t.OrderID().Google(),
		IssuedAt:   t.IssuedAt(),
		TTLMinutes: t.TTLMinutes(),
		ExpiresAt:  t.ExpiresAt(),
	}
}

func toDomain(dto QrTokenDTO) (*qrtoken.Token, error) {
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	return qrtoken.RestoreToken(dto.Value, orderID, dto.IssuedAt, dto.TTLMinutes)
}
