package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedIdentity kernel.Role

func (f fixedIdentity) CurrentRole(_ context.Context) kernel.Role {
	return kernel.Role(f)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ULID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) LocatorInUse(ctx context.Context, locator order.Locator) (bool, error) {
	args := m.Called(ctx, locator)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if msgs, ok := args.Get(0).([]ports.OutboxMessage); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	args := m.Called(ctx, ids, sentAt)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockUoW satisfies every narrow unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

func mustProduct(name, price string, available bool) *product.Product {
	p, err := product.RestoreProduct(kernel.NewUUID(), name, kernel.MustMoney(price), available)
	if err != nil {
		panic(err)
	}
	return p
}

func mustOrder(status order.Status) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), 1, kernel.MustMoney("8.00"))
	if err != nil {
		panic(err)
	}
	locator, err := order.NewLocator("K100")
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC()
	o, err := order.RestoreOrder(kernel.NewULID(), locator, status, []order.Item{item}, "", nil, now, now, 1)
	if err != nil {
		panic(err)
	}
	return o
}
