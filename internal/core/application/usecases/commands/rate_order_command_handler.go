package commands

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// RateOrderCommandHandler attaches a rating to a delivered order. A second rating
// replaces the first.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.Identity
	policy     services.TransitionPolicy
	logger     *slog.Logger
}

func NewRateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.Identity,
	policy services.TransitionPolicy,
	logger *slog.Logger,
) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		logger:     logger.With("component", "rate_order_handler"),
	}
}

// Handle returns order.ErrOrderNotFulfilled unless the order is Delivered.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanRate(role), role, "rate orders"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Rate(cmd.Rating()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order rated",
		"order_id", o.ID().String(),
		"rating", cmd.Rating().Value(),
	)
	return o, nil
}
