package errs

import (
	"errors"
	"fmt"
)

var (
	ErrQuantityExceeded     = errors.New("quantity exceeded")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrTokenNotFound        = errors.New("qr token not found")
	ErrTokenExpired         = errors.New("qr token expired")
	ErrOrderBusy            = errors.New("order is busy")
	ErrInventoryUnavailable = errors.New("inventory unavailable")
	ErrAlreadyCancelled     = errors.New("order already cancelled")
)

// QuantityExceededError is raised when a shipment would push an item's
// approved quantity past its ordered quantity.
type QuantityExceededError struct {
	ProductID string
	Requested int
	Remaining int
}

func NewQuantityExceededError(productID string, requested, remaining int) *QuantityExceededError {
	return &QuantityExceededError{ProductID: productID, Requested: requested, Remaining: remaining}
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, remaining %d",
		ErrQuantityExceeded, sanitize(e.ProductID), e.Requested, e.Remaining)
}

func (e *QuantityExceededError) Unwrap() error {
	return ErrQuantityExceeded
}

type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: from %s to %s", ErrInvalidTransition, sanitize(e.From), sanitize(e.To))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError never carries resource identifiers so it cannot leak
// whether the target exists.
type UnauthorizedError struct {
	Action string
	Role   string
}

func NewUnauthorizedError(action, role string) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Role: role}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: role %s cannot %s", ErrUnauthorized, sanitize(e.Role), e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

type OrderBusyError struct {
	OrderID string
}

func NewOrderBusyError(orderID string) *OrderBusyError {
	return &OrderBusyError{OrderID: orderID}
}

func (e *OrderBusyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderBusy, e.OrderID)
}

func (e *OrderBusyError) Unwrap() error {
	return ErrOrderBusy
}

type InventoryUnavailableError struct {
	ProductID string
	Quantity  int
	Cause     error
}

func NewInventoryUnavailableError(productID string, quantity int) *InventoryUnavailableError {
	return &InventoryUnavailableError{ProductID: productID, Quantity: quantity}
}

func NewInventoryUnavailableErrorWithCause(productID string, quantity int, cause error) *InventoryUnavailableError {
	return &InventoryUnavailableError{ProductID: productID, Quantity: quantity, Cause: cause}
}

func (e *InventoryUnavailableError) Error() string {
	msg := fmt.Sprintf("%s: product %s, quantity %d", ErrInventoryUnavailable, sanitize(e.ProductID), e.Quantity)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *InventoryUnavailableError) Unwrap() error {
	return ErrInventoryUnavailable
}
