package commands

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a status transition.
//
// The transition is validated against the workflow first, then against the
// caller's role, and is persisted with a version-guarded update. When two callers
// race on the same order, exactly one update wins; the other fails with
// errs.ErrVersionIsInvalid and leaves the stored order untouched.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.Identity
	policy     services.TransitionPolicy
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.Identity,
	policy services.TransitionPolicy,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle returns the order after the transition.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(role.IsStaff(), role, "change order status"); err != nil {
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

	from := o.Status()
	if err = o.TransitionTo(cmd.Status()); err != nil {
		return nil, err
	}

	if err = h.policy.AuthorizeTransition(role, from, o.Status()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order status changed",
		"order_id", o.ID().String(),
		"locator", o.Locator().String(),
		"from", from.String(),
		"to", o.Status().String(),
		"role", role.String(),
	)
	return o, nil
}
