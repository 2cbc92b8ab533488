package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrIssueQrTokenCommandIsNotConstructed = errors.New(
	"IssueQrTokenCommand must be created via NewIssueQrTokenCommand constructor",
)

type IssueQrTokenCommand struct {
	orderID kernel.UUID
	actor   kernel.ActingUser
	guard   guard.ConstructorGuard
}

func NewIssueQrTokenCommand(orderID kernel.UUID, actor kernel.ActingUser) (IssueQrTokenCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueQrTokenCommand{}, err
	}
	return IssueQrTokenCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c IssueQrTokenCommand) Validate() error {
	return c.guard.Validate(ErrIssueQrTokenCommandIsNotConstructed)
}

func (c IssueQrTokenCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c IssueQrTokenCommand) Actor() kernel.ActingUser {
	return c.actor
}
