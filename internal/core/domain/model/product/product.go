package product

import (
	"errors"
	"strings"
	"unicode/utf8"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

// MaxNameLength bounds the product name, in characters.
const MaxNameLength = 100

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product is a sellable menu entry.
type Product struct {
	id        kernel.UUID
	name      string
	price     kernel.Money
	available bool

	guard guard.ConstructorGuard
}

// NewProduct creates an available product with a fresh id.
func NewProduct(name string, price kernel.Money) (*Product, error) {
	return RestoreProduct(kernel.NewUUID(), name, price, true)
}

// RestoreProduct rebuilds a product from persisted state.
func RestoreProduct(id kernel.UUID, name string, price kernel.Money, available bool) (*Product, error) {
	p := &Product{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() kernel.Money {
	return p.price
}

// IsAvailable reports whether the product can be added to new orders.
func (p *Product) IsAvailable() bool {
	return p.available
}

// ChangePrice sets the catalog price for future orders.
func (p *Product) ChangePrice(price kernel.Money) error {
	return p.setPrice(price)
}

// Rename replaces the display name.
func (p *Product) Rename(name string) error {
	return p.setName(name)
}

func (p *Product) MarkAvailable() {
	p.available = true
}

func (p *Product) MarkUnavailable() {
	p.available = false
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}
