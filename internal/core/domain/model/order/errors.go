package order

import "errors"

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrEmptyOrder is the cause when an order is created without items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrOrderNotFulfilled is returned when rating an order that is not delivered.
	ErrOrderNotFulfilled = errors.New("order is not delivered")

	// ErrOrderNotDeletable is returned when deleting an order that has left Pending.
	ErrOrderNotDeletable = errors.New("only pending orders can be deleted")
)
