package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/errs"
	"foodtruck/internal/pkg/guard"
)

// MaxNotesLength bounds the free-text notes of an order, in characters.
const MaxNotesLength = 500

// Order is a customer's purchase. It is the aggregate root that owns its items,
// locator, status, rating and total.
//
// Order follows these invariants:
//   - Has at least one item and every item has a positive quantity
//   - Total equals the sum of item subtotals and is recomputed whenever items are attached
//   - Status changes only along the edges of TransitionTable
//   - Carries a rating only while Delivered
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id      kernel.ULID
	locator Locator
	status  Status
	items   []Item
	notes   string
	rating  *Rating
	total   kernel.Money

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency counter the order was loaded with.
	// The aggregate never changes it; a successful update stores version+1.
	version int

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder creates a Pending order. The total is computed from items.
//
// Example:
//
//	item, _ := order.NewItem(productID, 2, kernel.MustMoney("10.00"))
//	locator, _ := order.NewLocator("A123")
//	o, err := order.NewOrder(kernel.NewULID(), locator, []order.Item{item}, "no onions")
//	// o.Total().String() == "20.00"
func NewOrder(id kernel.ULID, locator Locator, items []Item, notes string) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocator(locator),
		o.setItems(items),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	o.record(EventOrderCreated, Unknown)
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Business rules on items
// and notes are re-checked and the total is recomputed rather than trusted.
func RestoreOrder(
	id kernel.ULID,
	locator Locator,
	status Status,
	items []Item,
	notes string,
	rating *Rating,
	createdAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocator(locator),
		o.setStatus(status),
		o.setItems(items),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	if rating != nil {
		if status != Delivered {
			return nil, fmt.Errorf("%w: rated order has status %s", ErrOrderNotFulfilled, status)
		}
		if err := rating.Validate(); err != nil {
			return nil, err
		}
		r := *rating
		o.rating = &r
	}

	return o, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ULID {
	return o.id
}

func (o *Order) Locator() Locator {
	return o.locator
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []Item {
	return append([]Item{}, o.items...)
}

func (o *Order) Notes() string {
	return o.notes
}

// Rating returns the customer rating, or nil if the order has not been rated.
func (o *Order) Rating() *Rating {
	if o.rating == nil {
		return nil
	}
	r := *o.rating
	return &r
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the concurrency counter the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// TransitionTo moves the order to next if the edge exists in the workflow.
// Only status and updatedAt change.
//
// Returns *InvalidTransitionError (matching ErrInvalidTransition) when the edge is
// missing, including self transitions and any move out of a terminal status.
func (o *Order) TransitionTo(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	o.record(EventOrderStatusChanged, previous)
	return nil
}

// Rate attaches customer feedback to a delivered order. Rating again replaces the
// previous rating.
func (o *Order) Rate(rating Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	if o.status != Delivered {
		return fmt.Errorf("%w: status is %s", ErrOrderNotFulfilled, o.status)
	}

	o.rating = &rating
	o.updatedAt = time.Now().UTC()
	o.record(EventOrderRated, o.status)
	return nil
}

// MarkDeleted checks that the order may be removed and records the deletion event.
// The repository performs the actual removal.
func (o *Order) MarkDeleted() error {
	if o.status != Pending {
		return fmt.Errorf("%w: status is %s", ErrOrderNotDeletable, o.status)
	}
	o.updatedAt = time.Now().UTC()
	o.record(EventOrderDeleted, o.status)
	return nil
}

func (o *Order) setID(id kernel.ULID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLocator(locator Locator) error {
	if err := locator.Validate(); err != nil {
		return err
	}
	o.locator = locator
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", ErrEmptyOrder)
	}

	validated := make([]Item, 0, len(items))
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
		validated = append(validated, item)
	}

	o.items = validated
	o.total = CalculateTotal(validated)
	return nil
}

func (o *Order) setNotes(notes string) error {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, MaxNotesLength)
	}
	o.notes = notes
	return nil
}
