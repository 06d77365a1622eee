package commands

import "errors"

var (
	// ErrProductNotFound is returned when an order line references an unknown product.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductUnavailable is returned when an order line references a product that
	// is not currently orderable.
	ErrProductUnavailable = errors.New("product is unavailable")
)
