package commands

import (
	"errors"
	"strings"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds an entry to the menu.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	name  string
	price kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(name string, price kernel.Money) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setPrice(price),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Price() kernel.Money {
	return c.price
}

func (c *CreateProductCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateProductCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	c.price = price
	return nil
}
