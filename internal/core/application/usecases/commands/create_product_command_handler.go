package commands

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
)

// CreateProductCommandHandler adds products to the catalog. Admin only.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	identity   ports.Identity
	policy     services.TransitionPolicy
	logger     *slog.Logger
}

func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory,
	identity ports.Identity,
	policy services.TransitionPolicy,
	logger *slog.Logger,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		logger:     logger.With("component", "create_product_handler"),
	}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	role := h.identity.CurrentRole(ctx)
	if err := services.Authorize(h.policy.CanManageCatalog(role), role, "manage the catalog"); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(cmd.Name(), cmd.Price())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Product created", "product_id", p.ID().String(), "name", p.Name(), "price", p.Price().String())
	return p, nil
}
