package queries

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/pkg/guard"
)

var ErrListProductsQueryIsNotConstructed = errors.New(
	"ListProductsQuery must be created via NewListProductsQuery constructor",
)

// ListProductsQuery retrieves the catalog ordered by name.
type ListProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewListProductsQuery() ListProductsQuery {
	return ListProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

// ProductResponse is the read model of a catalog entry.
type ProductResponse struct {
	ID        kernel.UUID
	Name      string
	Price     kernel.Money
	Available bool
}

func NewProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID(),
		Name:      p.Name(),
		Price:     p.Price(),
		Available: p.IsAvailable(),
	}
}
