package commands

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// UpdateProductCommandHandler applies catalog changes. Admin only.
type UpdateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	identity   ports.Identity
	policy     services.TransitionPolicy
	logger     *slog.Logger
}

func NewUpdateProductCommandHandler(
	uowFactory ProductUoWFactory,
	identity ports.Identity,
	policy services.TransitionPolicy,
	logger *slog.Logger,
) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		logger:     logger.With("component", "update_product_handler"),
	}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanManageCatalog(role), role, "manage the catalog"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	p, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	changes := cmd.Changes()
	if changes.Name != nil {
		if err = p.Rename(*changes.Name); err != nil {
			return nil, err
		}
	}
	if changes.Price != nil {
		if err = p.ChangePrice(*changes.Price); err != nil {
			return nil, err
		}
	}
	if changes.Available != nil {
		if *changes.Available {
			p.MarkAvailable()
		} else {
			p.MarkUnavailable()
		}
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Product updated",
		"product_id", p.ID().String(),
		"price", p.Price().String(),
		"available", p.IsAvailable(),
	)
	return p, nil
}
