package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrVerifyQrTokenQueryIsNotConstructed = errors.New(
	"VerifyQrTokenQuery must be created via NewVerifyQrTokenQuery constructor",
)

// VerifyQrTokenQuery is open to every caller, guests included. The acting
// user id is only recorded in the log.
type VerifyQrTokenQuery struct {
	token        string
	actingUserID string
	guard        guard.ConstructorGuard
}

func NewVerifyQrTokenQuery(token, actingUserID string) (VerifyQrTokenQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return VerifyQrTokenQuery{}, errs.NewValueIsRequiredError("token")
	}
	actingUserID = strings.TrimSpace(actingUserID)
	if actingUserID == "" {
		actingUserID = string(kernel.RoleGuest)
	}
	return VerifyQrTokenQuery{token: token, actingUserID: actingUserID, guard: guard.NewConstructorGuard()}, nil
}

func (q VerifyQrTokenQuery) Validate() error {
	return q.guard.Validate(ErrVerifyQrTokenQueryIsNotConstructed)
}

func (q VerifyQrTokenQuery) ActingUserID() string {
	return q.actingUserID
}
