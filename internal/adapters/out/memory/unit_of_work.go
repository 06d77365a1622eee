package memory

import (
	"context"
	"slices"
	"time"

	"foodtruck/internal/adapters/out/outbox"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"
)

type changeKind int

const (
	changeAdd changeKind = iota + 1
	changeUpdate
	changeDelete
)

type orderChange struct {
	kind            changeKind
	order           *order.Order
	expectedVersion int
}

type productChange struct {
	kind    changeKind
	product *product.Product
}

// changeSet holds the writes of one transaction until Commit.
type changeSet struct {
	orders   []orderChange
	products []productChange
	outbox   []ports.OutboxMessage
	sent     []sentMark
	tracked  []outbox.EventSource
}

func (c *changeSet) track(source outbox.EventSource) {
	if !slices.Contains(c.tracked, source) {
		c.tracked = append(c.tracked, source)
	}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes and applies them to the store on Commit. Reads see
// committed state only. Writes made without Begin are committed immediately.
// It is not safe for concurrent use.
type UnitOfWork struct {
	store   *Store
	changes *changeSet
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.changes == nil {
		uow.changes = &changeSet{}
	}
	return nil
}

// Commit applies the staged writes atomically, draining the domain events of
// written aggregates into the outbox.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.changes == nil {
		return ErrNoTransaction
	}

	changes := uow.changes
	uow.changes = nil
	return uow.store.commit(changes)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.changes == nil {
		return ErrNoTransaction
	}
	uow.changes = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) ProductRepository() ports.ProductRepository {
	return &productRepository{uow: uow}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &outboxRepository{uow: uow}
}

// stage records a write in the open transaction, or commits it on its own.
func (uow *UnitOfWork) stage(record func(changes *changeSet)) error {
	if uow.changes != nil {
		record(uow.changes)
		return nil
	}

	changes := &changeSet{}
	record(changes)
	return uow.store.commit(changes)
}

// commit stores the events of tracked aggregates with the changes and clears
// them from the aggregates once the changes are applied.
func (s *Store) commit(changes *changeSet) error {
	for _, source := range changes.tracked {
		messages, err := outbox.FromEvents(source.DomainEvents())
		if err != nil {
			return err
		}
		changes.outbox = append(changes.outbox, messages...)
	}

	if err := s.apply(changes); err != nil {
		return err
	}

	for _, source := range changes.tracked {
		source.ClearDomainEvents()
	}
	return nil
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if r.uow.store.locatorInUse(aggregate.Locator()) {
		return ports.ErrLocatorTaken
	}

	snapshot, err := cloneOrder(aggregate, 1)
	if err != nil {
		return err
	}
	return r.uow.stage(func(changes *changeSet) {
		changes.orders = append(changes.orders, orderChange{kind: changeAdd, order: snapshot})
		changes.track(aggregate)
	})
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return r.write(ctx, changeUpdate, aggregate)
}

func (r *orderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	return r.write(ctx, changeDelete, aggregate)
}

func (r *orderRepository) write(_ context.Context, kind changeKind, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	version, ok := r.uow.store.orderVersion(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if version != aggregate.Version() {
		return staleOrder()
	}

	snapshot, err := cloneOrder(aggregate, aggregate.Version())
	if err != nil {
		return err
	}
	return r.uow.stage(func(changes *changeSet) {
		changes.orders = append(changes.orders, orderChange{
			kind:            kind,
			order:           snapshot,
			expectedVersion: aggregate.Version(),
		})
		changes.track(aggregate)
	})
}

func (r *orderRepository) Get(_ context.Context, id kernel.ULID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.uow.store.getOrder(id)
}

func (r *orderRepository) LocatorInUse(_ context.Context, locator order.Locator) (bool, error) {
	return r.uow.store.locatorInUse(locator), nil
}

type productRepository struct {
	uow *UnitOfWork
}

func (r *productRepository) Add(_ context.Context, aggregate *product.Product) error {
	return r.write(changeAdd, aggregate)
}

func (r *productRepository) Update(_ context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.uow.store.getProduct(aggregate.ID()); err != nil {
		return err
	}
	return r.write(changeUpdate, aggregate)
}

func (r *productRepository) write(kind changeKind, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	snapshot, err := cloneProduct(aggregate)
	if err != nil {
		return err
	}
	return r.uow.stage(func(changes *changeSet) {
		changes.products = append(changes.products, productChange{kind: kind, product: snapshot})
	})
}

func (r *productRepository) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.uow.store.getProduct(id)
}

func (r *productRepository) List(_ context.Context) ([]*product.Product, error) {
	return r.uow.store.listProducts()
}

type outboxRepository struct {
	uow *UnitOfWork
}

func (r *outboxRepository) Add(_ context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return r.uow.stage(func(changes *changeSet) {
		changes.outbox = append(changes.outbox, messages...)
	})
}

func (r *outboxRepository) Pending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	return r.uow.store.pending(limit), nil
}

func (r *outboxRepository) MarkSent(_ context.Context, ids []kernel.UUID, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.uow.stage(func(changes *changeSet) {
		for _, id := range ids {
			changes.sent = append(changes.sent, sentMark{id: id, at: sentAt})
		}
	})
}
