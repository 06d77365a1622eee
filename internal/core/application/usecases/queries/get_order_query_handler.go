package queries

import (
	"context"

	"foodtruck/internal/core/ports"
)

// GetOrderQueryHandler loads an order for display. Customers use it to follow
// their order, so it requires no staff role.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.reader.FindByID(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return NewOrderResponse(o), nil
}
