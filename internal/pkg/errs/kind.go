package errs

import (
	"errors"
	"net"
)

// Kind is the stable, transport independent classification of an error.
type Kind string

const (
	KindValidation           Kind = "ValidationError"
	KindQuantityExceeded     Kind = "QuantityExceeded"
	KindInvalidTransition    Kind = "InvalidTransition"
	KindUnauthorized         Kind = "Unauthorized"
	KindTokenNotFound        Kind = "TokenNotFound"
	KindTokenExpired         Kind = "TokenExpired"
	KindOrderBusy            Kind = "OrderBusy"
	KindInventoryUnavailable Kind = "InventoryUnavailable"
	KindNotFound             Kind = "NotFound"
	KindNetwork              Kind = "NetworkError"
	KindAlreadyCancelled     Kind = "AlreadyCancelled"
	KindInternal             Kind = "Internal"
)

var kindOrder = []struct {
	sentinel error
	kind     Kind
}{
	{ErrUnauthorized, KindUnauthorized},
	{ErrQuantityExceeded, KindQuantityExceeded},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrTokenNotFound, KindTokenNotFound},
	{ErrTokenExpired, KindTokenExpired},
	{ErrOrderBusy, KindOrderBusy},
	{ErrInventoryUnavailable, KindInventoryUnavailable},
	{ErrAlreadyCancelled, KindAlreadyCancelled},
	{ErrObjectNotFound, KindNotFound},
	{ErrValueIsRequired, KindValidation},
	{ErrValueIsInvalid, KindValidation},
	{ErrValueIsOutOfRange, KindValidation},
}

// KindOf classifies err. Joined errors resolve to the first matching kind in
// precedence order; anything unrecognised is Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kindOrder {
		if errors.Is(err, k.sentinel) {
			return k.kind
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindInternal
}
