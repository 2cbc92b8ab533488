package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrStockOutCommandIsNotConstructed = errors.New(
	"StockOutCommand must be created via NewStockOutCommand constructor",
)

// StockOutCommand ships quantities of one order's items.
type StockOutCommand struct {
	orderID    kernel.UUID
	allocation order.Allocation
	actor      kernel.ActingUser
	guard      guard.ConstructorGuard
}

// NewStockOutCommand validates the request shape: a real order id and at
// least one positive, non-negative quantity.
func NewStockOutCommand(
	orderID kernel.UUID,
	itemQuantities map[string]int,
	actor kernel.ActingUser,
) (StockOutCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StockOutCommand{}, err
	}
	allocation, err := order.NewAllocation(itemQuantities)
	if err != nil {
		return StockOutCommand{}, err
	}
	return StockOutCommand{
		orderID:    orderID,
		allocation: allocation,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c StockOutCommand) Validate() error {
	return c.guard.Validate(ErrStockOutCommandIsNotConstructed)
}

func (c StockOutCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c StockOutCommand) Allocation() order.Allocation {
	return c.allocation
}

func (c StockOutCommand) Actor() kernel.ActingUser {
	return c.actor
}
