package queries

import (
	"context"

	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// ProductLister reads the whole catalog.
type ProductLister interface {
	List(ctx context.Context) ([]*product.Product, error)
}

// ListProductsQueryHandler serves the catalog to staff taking orders.
type ListProductsQueryHandler struct {
	lister   ProductLister
	identity ports.Identity
	policy   services.TransitionPolicy
}

func NewListProductsQueryHandler(
	lister ProductLister,
	identity ports.Identity,
	policy services.TransitionPolicy,
) ListProductsQueryHandler {
	return ListProductsQueryHandler{lister: lister, identity: identity, policy: policy}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanViewOrders(role), role, "view the catalog"); err != nil {
		return nil, err
	}

	products, err := h.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, NewProductResponse(p))
	}
	return resp, nil
}
