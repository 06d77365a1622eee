package ports

import (
	"context"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/product"
)

// ProductLookup resolves a product id to its current price and availability.
type ProductLookup interface {
	// Get returns errs.ErrObjectNotFound when no product has the id.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}

// ProductRepository defines the persistence contract for the catalog.
type ProductRepository interface {
	ProductLookup

	Add(ctx context.Context, aggregate *product.Product) error
	Update(ctx context.Context, aggregate *product.Product) error
	List(ctx context.Context) ([]*product.Product, error)
}
