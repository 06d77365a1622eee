package commands

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// ProductChanges lists the fields to change. Nil fields are left as they are.
type ProductChanges struct {
	Name      *string
	Price     *kernel.Money
	Available *bool
}

// UpdateProductCommand changes name, price or availability of a product.
// Existing orders keep the prices they were created with.
type UpdateProductCommand struct {
	productID kernel.UUID
	changes   ProductChanges

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(productID kernel.UUID, changes ProductChanges) (UpdateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return UpdateProductCommand{}, err
	}
	if changes.Name == nil && changes.Price == nil && changes.Available == nil {
		return UpdateProductCommand{}, errs.NewValueIsRequiredError("changes")
	}
	if changes.Price != nil {
		if err := changes.Price.Validate(); err != nil {
			return UpdateProductCommand{}, err
		}
	}
	return UpdateProductCommand{productID: productID, changes: changes, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c UpdateProductCommand) Changes() ProductChanges {
	return c.changes
}
