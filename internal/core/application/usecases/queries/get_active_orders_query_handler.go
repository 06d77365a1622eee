package queries

import (
	"context"

	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// GetActiveOrdersQueryHandler serves the board shown to staff.
type GetActiveOrdersQueryHandler struct {
	reader   ports.OrderReader
	identity ports.Identity
	policy   services.TransitionPolicy
}

func NewGetActiveOrdersQueryHandler(
	reader ports.OrderReader,
	identity ports.Identity,
	policy services.TransitionPolicy,
) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{reader: reader, identity: identity, policy: policy}
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanViewOrders(role), role, "view the order board"); err != nil {
		return nil, err
	}

	orders, err := h.reader.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, NewOrderResponse(o))
	}
	return resp, nil
}
