// Package queries contains read-only operations of the order engine.
package queries

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
)

// OrderItemResponse is one line of an order as shown to callers.
type OrderItemResponse struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID            kernel.ULID
	Locator       string
	Status        order.Status
	Items         []OrderItemResponse
	Notes         string
	Rating        *int
	RatingComment string
	Total         kernel.Money
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrderResponse maps an aggregate to its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	resp := OrderResponse{
		ID:        o.ID(),
		Locator:   o.Locator().String(),
		Status:    o.Status(),
		Items:     make([]OrderItemResponse, 0, len(items)),
		Notes:     o.Notes(),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
	}
	if r := o.Rating(); r != nil {
		value := r.Value()
		resp.Rating = &value
		resp.RatingComment = r.Comment()
	}
	return resp
}
