package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one product and quantity pair of an intake request.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a cart submitted at the counter.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand([]OrderLine{
//	    {ProductID: tacoID, Quantity: 2},
//	    {ProductID: sodaID, Quantity: 1},
//	}, "no cilantro")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	lines []OrderLine
	notes string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the request: at least one line,
// valid product ids, positive quantities and bounded notes. Product existence and
// availability are checked by the handler.
func NewCreateOrderCommand(lines []OrderLine, notes string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLines(lines),
		cmd.setNotes(notes),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Lines returns a copy of the requested lines in submission order.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine{}, c.lines...)
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", order.ErrEmptyOrder)
	}

	var lineErrs []error
	for idx, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", idx, err))
		}
		if line.Quantity <= 0 {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", idx, order.NewInvalidQuantityError(line.Quantity)))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = append([]OrderLine{}, lines...)
	return nil
}

func (c *CreateOrderCommand) setNotes(notes string) error {
	if n := utf8.RuneCountInString(notes); n > order.MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, order.MaxNotesLength)
	}
	c.notes = notes
	return nil
}
