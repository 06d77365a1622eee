package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/model/product"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) FindByID(ctx context.Context, id kernel.ULID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) FindActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).([]*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedIdentity kernel.Role

func (f fixedIdentity) CurrentRole(_ context.Context) kernel.Role {
	return kernel.Role(f)
}

func ratedOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	locator, err := order.NewLocator("D404")
	require.NoError(t, err)
	rating, err := order.NewRating(5, "perfect")
	require.NoError(t, err)
	now := time.Now().UTC()
	o, err := order.RestoreOrder(kernel.NewULID(), locator, order.Delivered, []order.Item{item}, "to go", &rating, now, now, 3)
	require.NoError(t, err)
	return o
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should map the aggregate", func(t *testing.T) {
		o := ratedOrder(t)
		reader := new(MockOrderReader)
		reader.On("FindByID", ctx, o.ID()).Return(o, nil).Once()
		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)

		resp, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "D404", resp.Locator)
		assert.Equal(t, order.Delivered, resp.Status)
		assert.Equal(t, "20.00", resp.Total.String())
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "20.00", resp.Items[0].Subtotal.String())
		require.NotNil(t, resp.Rating)
		assert.Equal(t, 5, *resp.Rating)
		assert.Equal(t, "perfect", resp.RatingComment)
		assert.Equal(t, "to go", resp.Notes)
	})

	t.Run("should pass not found through", func(t *testing.T) {
		id := kernel.NewULID()
		reader := new(MockOrderReader)
		reader.On("FindByID", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
		query, _ := queries.NewGetOrderQuery(id)

		_, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject unconstructed queries", func(t *testing.T) {
		_, err := queries.NewGetOrderQueryHandler(new(MockOrderReader)).Handle(ctx, queries.GetOrderQuery{})
		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetActiveOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	policy := services.NewTransitionPolicy()

	t.Run("should list active orders for staff", func(t *testing.T) {
		o := ratedOrder(t)
		reader := new(MockOrderReader)
		reader.On("FindActive", ctx).Return([]*order.Order{o}, nil).Once()

		resp, err := queries.NewGetActiveOrdersQueryHandler(reader, fixedIdentity(kernel.RoleKitchen), policy).
			Handle(ctx, queries.NewGetActiveOrdersQuery())

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.True(t, resp[0].ID.IsEqual(o.ID()))
	})

	t.Run("should deny customers", func(t *testing.T) {
		reader := new(MockOrderReader)

		_, err := queries.NewGetActiveOrdersQueryHandler(reader, fixedIdentity(kernel.RoleNone), policy).
			Handle(ctx, queries.NewGetActiveOrdersQuery())

		require.ErrorIs(t, err, services.ErrPermissionDenied)
		reader.AssertNotCalled(t, "FindActive", mock.Anything)
	})

	t.Run("should propagate reader errors", func(t *testing.T) {
		reader := new(MockOrderReader)
		reader.On("FindActive", ctx).Return(nil, errors.New("db down")).Once()

		_, err := queries.NewGetActiveOrdersQueryHandler(reader, fixedIdentity(kernel.RoleAdmin), policy).
			Handle(ctx, queries.NewGetActiveOrdersQuery())

		require.Error(t, err)
	})
}

func TestGetTransitionTableQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	h := queries.NewGetTransitionTableQueryHandler(services.NewTransitionPolicy())

	t.Run("should list the full workflow in order", func(t *testing.T) {
		entries, err := h.Handle(ctx, queries.NewGetTransitionTableQuery())

		require.NoError(t, err)
		require.Len(t, entries, 5)
		assert.Equal(t, order.Pending, entries[0].From)
		assert.Equal(t, []order.Status{order.Preparing, order.Cancelled}, entries[0].To)
		assert.Equal(t, order.Cancelled, entries[4].From)
		assert.True(t, entries[3].Terminal)
		assert.True(t, entries[4].Terminal)
		assert.False(t, entries[2].Terminal)
	})

	t.Run("should narrow the workflow to a role", func(t *testing.T) {
		entries, err := h.Handle(ctx, queries.NewGetTransitionTableQueryForRole(kernel.RoleKitchen))

		require.NoError(t, err)
		assert.Equal(t, []order.Status{order.Preparing}, entries[0].To)
		assert.Equal(t, []order.Status{order.Ready}, entries[1].To)
		assert.Empty(t, entries[2].To)
	})
}

type MockProductLister struct{ mock.Mock }

func (m *MockProductLister) List(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListProductsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	policy := services.NewTransitionPolicy()

	t.Run("maps catalog", func(t *testing.T) {
		burger, err := product.NewProduct("Burger", kernel.MustMoney("10.00"))
		require.NoError(t, err)
		lister := new(MockProductLister)
		lister.On("List", ctx).Return([]*product.Product{burger}, nil).Once()

		handler := queries.NewListProductsQueryHandler(lister, fixedIdentity(kernel.RoleKitchen), policy)
		resp, err := handler.Handle(ctx, queries.NewListProductsQuery())

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Burger", resp[0].Name)
		assert.Equal(t, "10.00", resp[0].Price.String())
		assert.True(t, resp[0].Available)
		lister.AssertExpectations(t)
	})

	t.Run("anonymous caller is denied", func(t *testing.T) {
		lister := new(MockProductLister)
		handler := queries.NewListProductsQueryHandler(lister, fixedIdentity(kernel.RoleNone), policy)

		_, err := handler.Handle(ctx, queries.NewListProductsQuery())

		require.ErrorIs(t, err, services.ErrPermissionDenied)
		lister.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("zero value query", func(t *testing.T) {
		handler := queries.NewListProductsQueryHandler(new(MockProductLister), fixedIdentity(kernel.RoleAdmin), policy)

		_, err := handler.Handle(ctx, queries.ListProductsQuery{})

		require.ErrorIs(t, err, queries.ErrListProductsQueryIsNotConstructed)
	})
}
