// Package memory keeps orders, products and the outbox in process memory.
// It backs the service when no database is configured and gives the same
// transactional guarantees as the PostgreSQL adapter: writes of a unit of work
// become visible together on Commit, and order writes are version checked.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"
)

var ErrNoTransaction = errors.New("no active transaction")

type orderRow struct {
	order   *order.Order
	version int
}

// Store is the shared state behind every unit of work created by a factory.
type Store struct {
	mu       sync.RWMutex
	orders   map[string]orderRow
	products map[string]*product.Product
	outbox   []ports.OutboxMessage
}

func NewStore() *Store {
	return &Store{
		orders:   make(map[string]orderRow),
		products: make(map[string]*product.Product),
	}
}

// FindByID implements ports.OrderReader.
func (s *Store) FindByID(_ context.Context, id kernel.ULID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(row.order, row.version)
}

// FindActive implements ports.OrderReader.
func (s *Store) FindActive(_ context.Context) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*order.Order, 0, len(s.orders))
	for _, row := range s.orders {
		if !row.order.Status().IsActive() {
			continue
		}
		o, err := cloneOrder(row.order, row.version)
		if err != nil {
			return nil, err
		}
		active = append(active, o)
	}

	slices.SortFunc(active, func(a, b *order.Order) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return active, nil
}

func (s *Store) getOrder(id kernel.ULID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(row.order, row.version)
}

func (s *Store) orderVersion(id kernel.ULID) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.orders[id.String()]
	return row.version, ok
}

func (s *Store) locatorInUse(locator order.Locator) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return activeLocator(s.orders, locator)
}

func (s *Store) getProduct(id kernel.UUID) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return cloneProduct(p)
}

func (s *Store) listProducts() ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*product.Product, 0, len(s.products))
	for _, p := range s.products {
		c, err := cloneProduct(p)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}

	slices.SortFunc(list, func(a, b *product.Product) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return list, nil
}

func (s *Store) pending(limit int) []ports.OutboxMessage {
	if limit <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]ports.OutboxMessage, 0, limit)
	for _, msg := range s.outbox {
		if len(messages) == limit {
			break
		}
		if msg.SentAt == nil {
			messages = append(messages, msg)
		}
	}
	return messages
}

// apply validates every staged change against the current state and writes
// them all, or none of them.
func (s *Store) apply(changes *changeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := maps.Clone(s.orders)
	products := maps.Clone(s.products)

	for _, change := range changes.orders {
		if err := applyOrder(orders, change); err != nil {
			return err
		}
	}
	for _, change := range changes.products {
		if err := applyProduct(products, change); err != nil {
			return err
		}
	}

	outbox := append(slices.Clone(s.outbox), changes.outbox...)
	for _, sent := range changes.sent {
		for i := range outbox {
			if outbox[i].ID.IsEqual(sent.id) {
				sentAt := sent.at
				outbox[i].SentAt = &sentAt
			}
		}
	}

	s.orders = orders
	s.products = products
	s.outbox = outbox
	return nil
}

func applyOrder(orders map[string]orderRow, change orderChange) error {
	id := change.order.ID().String()
	row, exists := orders[id]

	switch change.kind {
	case changeAdd:
		if exists {
			return errs.NewInfrastructureError("add order", errors.New("duplicate order id "+id))
		}
		if activeLocator(orders, change.order.Locator()) {
			return ports.ErrLocatorTaken
		}
		orders[id] = orderRow{order: change.order, version: 1}
	case changeUpdate, changeDelete:
		if !exists {
			return errs.NewObjectNotFoundError("order", id)
		}
		if row.version != change.expectedVersion {
			return staleOrder()
		}
		if change.kind == changeDelete {
			delete(orders, id)
			return nil
		}
		orders[id] = orderRow{order: change.order, version: row.version + 1}
	}
	return nil
}

func applyProduct(products map[string]*product.Product, change productChange) error {
	id := change.product.ID().String()
	_, exists := products[id]

	switch change.kind {
	case changeAdd:
		if exists {
			return errs.NewInfrastructureError("add product", errors.New("duplicate product id "+id))
		}
	case changeUpdate:
		if !exists {
			return errs.NewObjectNotFoundError("product", id)
		}
	case changeDelete:
		return errs.NewInfrastructureError("delete product", errors.New("products are never deleted"))
	}
	products[id] = change.product
	return nil
}

func activeLocator(orders map[string]orderRow, locator order.Locator) bool {
	for _, row := range orders {
		if row.order.Status().IsActive() && row.order.Locator().IsEqual(locator) {
			return true
		}
	}
	return false
}

func staleOrder() error {
	return errs.NewVersionIsInvalidErrorWithCause(
		"order",
		errors.New("order was modified concurrently, reload and retry"),
	)
}

// cloneOrder detaches stored state from the caller. Pending domain events are
// not copied.
func cloneOrder(o *order.Order, version int) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Locator(),
		o.Status(),
		o.Items(),
		o.Notes(),
		o.Rating(),
		o.CreatedAt(),
		o.UpdatedAt(),
		version,
	)
}

func cloneProduct(p *product.Product) (*product.Product, error) {
	return product.RestoreProduct(p.ID(), p.Name(), p.Price(), p.IsAvailable())
}

type sentMark struct {
	id kernel.UUID
	at time.Time
}
