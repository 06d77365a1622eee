// Package ports defines the contracts between the order engine and its
// infrastructure: persistence, identity and event publishing.
package ports

import (
	"context"
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
)

// ErrLocatorTaken is returned by OrderRepository.Add when another active order
// claimed the same locator concurrently.
var ErrLocatorTaken = errors.New("locator is taken by an active order")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items.
	// Returns ErrLocatorTaken if an active order already holds the locator.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and rating changes of an existing order.
	// The write is conditional on the version the order was loaded with; a stale
	// version yields errs.ErrVersionIsInvalid and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	// Returns errs.ErrObjectNotFound when no order has the id.
	Get(ctx context.Context, id kernel.ULID) (*order.Order, error)

	// Delete removes an order and its items, guarded by version like Update.
	Delete(ctx context.Context, aggregate *order.Order) error

	// LocatorInUse reports whether a non-terminal order holds locator.
	LocatorInUse(ctx context.Context, locator order.Locator) (bool, error)
}

// OrderReader serves the read side. It works outside of a unit of work.
type OrderReader interface {
	// FindByID returns errs.ErrObjectNotFound when no order has the id.
	FindByID(ctx context.Context, id kernel.ULID) (*order.Order, error)

	// FindActive returns every non-terminal order, oldest first.
	FindActive(ctx context.Context) ([]*order.Order, error)
}
