package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand is a status change requested through a QR token.
// The requested status stays a name until the order is known, so an unknown
// name is judged as a transition and never before the role check.
type AdvanceOrderStatusCommand struct {
	token  string
	status string
	actor  kernel.ActingUser
	guard  guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand only requires a token and a status name.
func NewAdvanceOrderStatusCommand(token, status string, actor kernel.ActingUser) (AdvanceOrderStatusCommand, error) {
	token = strings.TrimSpace(token)
	status = strings.ToUpper(strings.TrimSpace(status))
	var tokenErr, statusErr error
	if token == "" {
		tokenErr = errs.NewValueIsRequiredError("token")
	}
	if status == "" {
		statusErr = errs.NewValueIsRequiredError("status")
	}
	if err := errors.Join(tokenErr, statusErr); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	return AdvanceOrderStatusCommand{
		token:  token,
		status: status,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) Token() string {
	return c.token
}

// Status is the requested status name, upper case.
func (c AdvanceOrderStatusCommand) Status() string {
	return c.status
}

// TargetFrom resolves the requested name against the order's current
// status. A name that is not a status is an invalid transition.
func (c AdvanceOrderStatusCommand) TargetFrom(current order.Status) (order.Status, error) {
	target, err := order.ParseStatus(c.status)
	if err != nil {
		return order.Unknown, errs.NewInvalidTransitionErrorWithCause(current.String(), c.status, err)
	}
	return target, nil
}

func (c AdvanceOrderStatusCommand) Actor() kernel.ActingUser {
	return c.actor
}
