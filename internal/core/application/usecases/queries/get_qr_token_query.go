package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetQrTokenQueryIsNotConstructed = errors.New(
	"GetQrTokenQuery must be created via NewGetQrTokenQuery constructor",
)

// GetQrTokenQuery looks up a live token without touching its order. The QR
// image endpoint uses it.
type GetQrTokenQuery struct {
	token string
	guard guard.ConstructorGuard
}

func NewGetQrTokenQuery(token string) (GetQrTokenQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return GetQrTokenQuery{}, errs.NewValueIsRequiredError("token")
	}
	return GetQrTokenQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQrTokenQuery) Validate() error {
	return q.guard.Validate(ErrGetQrTokenQueryIsNotConstructed)
}
