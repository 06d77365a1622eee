package commands

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand records customer feedback for a delivered order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ULID
	rating  order.Rating

	guard guard.ConstructorGuard
}

// NewRateOrderCommand rejects ratings outside [order.MinRating, order.MaxRating]
// with order.ErrRatingOutOfRange.
func NewRateOrderCommand(orderID kernel.ULID, rating int, comment string) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRating(rating, comment),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return cmd, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.ULID {
	return c.orderID
}

func (c RateOrderCommand) Rating() order.Rating {
	return c.rating
}

func (c *RateOrderCommand) setOrderID(orderID kernel.ULID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setRating(value int, comment string) error {
	rating, err := order.NewRating(value, comment)
	if err != nil {
		return err
	}
	c.rating = rating
	return nil
}
