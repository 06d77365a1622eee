package order

import (
	"errors"
	"fmt"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

var (
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrInvalidQuantity is the cause of every rejected line quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// Item is one line of an order. The unit price is a snapshot of the catalog price
// at creation time and never changes afterwards.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewItem validates and creates an order line.
func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the weak reference to the catalog product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price × quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return NewInvalidQuantityError(quantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

// NewInvalidQuantityError builds the error returned for a non-positive quantity.
func NewInvalidQuantityError(quantity int) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"quantity",
		fmt.Errorf("%w: %d is not greater than 0", ErrInvalidQuantity, quantity),
	)
}

// CalculateTotal sums the subtotals of items. It is a pure function: the total is
// always recomputed, never patched incrementally.
func CalculateTotal(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
