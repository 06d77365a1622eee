package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"
)

// MaxCreateOrderAttempts bounds how often the whole intake unit is retried when a
// concurrent order claims the generated locator first.
const MaxCreateOrderAttempts = 3

// CreateOrderCommandHandler turns a cart into a Pending order.
//
// The handler resolves every product, snapshots its current price, computes the
// total, draws a locator and persists the order with its items in one unit of
// work. Any failure rolls the unit back: either the whole order is stored or
// nothing is.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, identity, policy, locators, logger)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrProductUnavailable):
//	    // tell the attendant which item is sold out
//	case err != nil:
//	    return err
//	}
//	fmt.Printf("Order %s, total %s\n", o.Locator(), o.Total())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.Identity
	policy     services.TransitionPolicy
	locators   services.LocatorGenerator
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.Identity,
	policy services.TransitionPolicy,
	locators services.LocatorGenerator,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		locators:   locators,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle creates the order and returns it as persisted.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanCreateOrder(role), role, "create orders"); err != nil {
		return nil, err
	}

	var (
		created *order.Order
		err     error
	)
	for attempt := 1; attempt <= MaxCreateOrderAttempts; attempt++ {
		created, err = h.create(ctx, cmd)
		if !errors.Is(err, ports.ErrLocatorTaken) {
			break
		}
		h.logger.WarnContext(ctx, "Locator taken concurrently, retrying", "attempt", attempt)
	}

	switch {
	case errors.Is(err, services.ErrLocatorExhausted):
		h.logger.ErrorContext(ctx, "Locator space exhausted", "error", err)
		return nil, err
	case errors.Is(err, errs.ErrInfrastructure):
		h.logger.ErrorContext(ctx, "Order creation failed", "error", err)
		return nil, err
	case err != nil:
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order created",
		"order_id", created.ID().String(),
		"locator", created.Locator().String(),
		"total", created.Total().String(),
		"items", len(created.Items()),
	)
	return created, nil
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := h.resolveItems(ctx, uow.ProductRepository(), cmd.Lines())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	locator, err := h.locators.Generate(ctx, orderRepo)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(kernel.NewULID(), locator, items, cmd.Notes())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// resolveItems fails fast on the first unknown or unavailable product.
func (h CreateOrderCommandHandler) resolveItems(
	ctx context.Context,
	products ports.ProductLookup,
	lines []OrderLine,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		p, err := products.Get(ctx, line.ProductID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		if err != nil {
			return nil, err
		}

		if !p.IsAvailable() {
			return nil, fmt.Errorf("%w: %s (%s)", ErrProductUnavailable, p.Name(), p.ID())
		}

		item, err := order.NewItem(p.ID(), line.Quantity, p.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
