// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
//
// A unit of work wraps one database transaction. Repositories obtained from it run
// inside that transaction and register every aggregate they write. On Commit the
// pending domain events of those aggregates are inserted into the outbox table in
// the same transaction, so state changes and their events are stored atomically.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Order updates are version checked instead of row locked
package postgres

import (
	"context"

	"foodtruck/internal/adapters/out/outbox"
	"foodtruck/internal/adapters/out/postgres/orderrepo"
	"foodtruck/internal/adapters/out/postgres/outboxrepo"
	"foodtruck/internal/adapters/out/postgres/productrepo"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work. It is not safe for concurrent use.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written through it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewInfrastructureError("begin transaction", tx.Error)
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit stores pending domain events in the outbox and commits the transaction.
// If the outbox write fails the transaction is rolled back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.NewInfrastructureError("commit transaction", err)
	}
	return nil
}

// Rollback discards the transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns a repository bound to the current transaction, or to
// the connection pool when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ProductRepository returns a repository bound to the current transaction.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

// OutboxRepository returns a repository bound to the current transaction.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Registering the same id twice keeps a single entry.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID == id {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	sources := make([]outbox.EventSource, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(outbox.EventSource); ok {
			sources = append(sources, source)
		}
	}
	if len(sources) == 0 {
		return nil
	}

	messages, err := outbox.Drain(sources)
	if err != nil {
		return err
	}

	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
}
