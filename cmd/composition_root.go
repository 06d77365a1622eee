package cmd

import (
	"log/slog"

	"foodtruck/internal/adapters/out/memory"
	"foodtruck/internal/adapters/out/postgres"
	"foodtruck/internal/adapters/out/postgres/orderrepo"
	"foodtruck/internal/adapters/out/postgres/productrepo"
	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	uowFactory    ports.UnitOfWorkFactory
	orderReader   ports.OrderReader
	productLister queries.ProductLister

	identity  ports.Identity
	publisher ports.EventPublisher
	policy    services.TransitionPolicy
	locators  services.LocatorGenerator
	logger    *slog.Logger
}

// NewCompositionRoot wires the use cases to Postgres when gormDB is given and
// to an in-memory store otherwise.
func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	identity ports.Identity,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		identity:  identity,
		publisher: publisher,
		policy:    services.NewTransitionPolicy(),
		locators:  services.NewLocatorGenerator(nil),
		logger:    logger,
	}

	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		root.orderReader = orderrepo.NewGormOrderReader(gormDB)
		root.productLister = productrepo.NewGormProductRepository(gormDB)
		return root
	}

	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	root.uowFactory = factory
	root.orderReader = store
	root.productLister = factory.Create().ProductRepository()
	return root
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.identity, c.policy, c.locators, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.identity, c.policy, c.logger)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoWFactory(), c.identity, c.policy, c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.identity, c.policy, c.logger)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.productUoWFactory(), c.identity, c.policy, c.logger)
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	return commands.NewUpdateProductCommandHandler(c.productUoWFactory(), c.identity, c.policy, c.logger)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.orderReader, c.identity, c.policy)
}

func (c *CompositionRoot) CreateGetTransitionTableQueryHandler() queries.GetTransitionTableQueryHandler {
	return queries.NewGetTransitionTableQueryHandler(c.policy)
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.productLister, c.identity, c.policy)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
