// Package qrtoken models the short-lived tokens printed as QR codes on
// delivery paperwork. A token lets anyone read its order and lets couriers
// and managers push the order's status forward.
package qrtoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultTTLMinutes applies when no TTL is configured.
const DefaultTTLMinutes = 15

var ErrTokenIsNotConstructed = errors.New("Token must be created via NewToken or RestoreToken")

// Token is keyed by its value. Several live tokens may point at one order.
type Token struct {
	value      string
	orderID    kernel.UUID
	issuedAt   time.Time
	ttlMinutes int
	guard      guard.ConstructorGuard
}

// NewToken issues a fresh token whose value is a random UUID without dashes.
func NewToken(orderID kernel.UUID, issuedAt time.Time, ttlMinutes int) (*Token, error) {
	return RestoreToken(kernel.NewUUID().Compact(), orderID, issuedAt, ttlMinutes)
}

func RestoreToken(value string, orderID kernel.UUID, issuedAt time.Time, ttlMinutes int) (*Token, error) {
	t := &Token{issuedAt: issuedAt, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		t.setValue(value),
		t.setOrderID(orderID),
		t.setTTL(ttlMinutes),
	); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Token) Validate() error {
	if t == nil {
		return ErrTokenIsNotConstructed
	}
	return t.guard.Validate(ErrTokenIsNotConstructed)
}

func (t *Token) Value() string {
	return t.value
}

func (t *Token) OrderID() kernel.UUID {
	return t.orderID
}

func (t *Token) IssuedAt() time.Time {
	return t.issuedAt
}

func (t *Token) TTLMinutes() int {
	return t.ttlMinutes
}

func (t *Token) ExpiresAt() time.Time {
	return t.issuedAt.Add(time.Duration(t.ttlMinutes) * time.Minute)
}

// IsExpired reports now > issuedAt + ttl.
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt())
}

// CheckUsable returns errs.ErrTokenExpired once the TTL has passed.
func (t *Token) CheckUsable(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.IsExpired(now) {
		return fmt.Errorf("%w: expired at %s", errs.ErrTokenExpired, t.ExpiresAt().Format(time.RFC3339))
	}
	return nil
}

func (t *Token) setValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("token")
	}
	t.value = value
	return nil
}

func (t *Token) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *Token) setTTL(ttlMinutes int) error {
	if ttlMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("ttlMinutes is invalid", fmt.Errorf("%d is not greater than 0", ttlMinutes))
	}
	t.ttlMinutes = ttlMinutes
	return nil
}
