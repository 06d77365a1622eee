package commands_test

import (
	"testing"

	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRateHandler(factory commands.OrderUoWFactory, role kernel.Role) commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(factory, fixedIdentity(role), services.NewTransitionPolicy(), discardLogger())
}

func TestRateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(order.Delivered)
	cmd, _ := commands.NewRateOrderCommand(o.ID(), 4, "")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	rated, err := newRateHandler(factory, kernel.RoleAttendant).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, rated.Rating())
	assert.Equal(t, 4, rated.Rating().Value())
	uow.AssertExpectations(t)
}

func TestRateOrderCommandHandler_Handle_NotFulfilled(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(order.Pending)
	cmd, _ := commands.NewRateOrderCommand(o.ID(), 5, "")

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	_, err := newRateHandler(factory, kernel.RoleAttendant).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotFulfilled)
	assert.Nil(t, o.Rating())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRateOrderCommandHandler_Handle_KitchenDenied(t *testing.T) {
	cmd, _ := commands.NewRateOrderCommand(kernel.NewULID(), 5, "")
	factory := new(MockOrderUoWFactory)

	_, err := newRateHandler(factory, kernel.RoleKitchen).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, services.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestRateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	_, err := newRateHandler(new(MockOrderUoWFactory), kernel.RoleAdmin).Handle(t.Context(), commands.RateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrRateOrderCommandIsNotConstructed)
}
