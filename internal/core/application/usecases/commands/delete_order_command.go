package commands

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order that has not left Pending.
type DeleteOrderCommand struct {
	orderID kernel.ULID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.ULID) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.ULID {
	return c.orderID
}
