package commands

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// DeleteOrderCommandHandler deletes Pending orders, typically a cart entered by
// mistake. Orders past Pending must be cancelled instead.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.Identity
	policy     services.TransitionPolicy
	logger     *slog.Logger
}

func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.Identity,
	policy services.TransitionPolicy,
	logger *slog.Logger,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		logger:     logger.With("component", "delete_order_handler"),
	}
}

// Handle returns order.ErrOrderNotDeletable for orders past Pending.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanDelete(role), role, "delete orders"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.MarkDeleted(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order deleted", "order_id", o.ID().String(), "locator", o.Locator().String())
	return nil
}
