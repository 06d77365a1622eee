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

func newDeleteHandler(factory commands.OrderUoWFactory, role kernel.Role) commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(factory, fixedIdentity(role), services.NewTransitionPolicy(), discardLogger())
}

func TestNewDeleteOrderCommand(t *testing.T) {
	_, err := commands.NewDeleteOrderCommand(kernel.ULID{})
	require.ErrorIs(t, err, kernel.ErrULIDIsNotConstructed)

	id := kernel.NewULID()
	cmd, err := commands.NewDeleteOrderCommand(id)
	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(id))
}

func TestDeleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(order.Pending)
	cmd, _ := commands.NewDeleteOrderCommand(o.ID())

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Delete", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := newDeleteHandler(factory, kernel.RoleAdmin).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_NotPending(t *testing.T) {
	ctx := t.Context()
	o := mustOrder(order.Preparing)
	cmd, _ := commands.NewDeleteOrderCommand(o.ID())

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	err := newDeleteHandler(factory, kernel.RoleAttendant).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotDeletable)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteOrderCommandHandler_Handle_KitchenDenied(t *testing.T) {
	cmd, _ := commands.NewDeleteOrderCommand(kernel.NewULID())

	err := newDeleteHandler(new(MockOrderUoWFactory), kernel.RoleKitchen).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, services.ErrPermissionDenied)
}
