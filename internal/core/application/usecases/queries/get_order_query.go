package queries

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery retrieves a single order with its items.
type GetOrderQuery struct {
	orderID kernel.ULID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.ULID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ULID {
	return q.orderID
}
