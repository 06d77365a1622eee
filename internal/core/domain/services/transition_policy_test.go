package services_test

import (
	"testing"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionPolicy_AllowedTransitions(t *testing.T) {
	policy := services.NewTransitionPolicy()

	t.Run("kitchen moves food through preparation only", func(t *testing.T) {
		allowed := policy.AllowedTransitions(kernel.RoleKitchen)

		assert.Equal(t, []order.Status{order.Preparing}, allowed[order.Pending])
		assert.Equal(t, []order.Status{order.Ready}, allowed[order.Preparing])
		assert.Empty(t, allowed[order.Ready])
		assert.Empty(t, allowed[order.Delivered])
		assert.Empty(t, allowed[order.Cancelled])
	})

	t.Run("attendant and admin get the whole table", func(t *testing.T) {
		for _, role := range []kernel.Role{kernel.RoleAttendant, kernel.RoleAdmin} {
			assert.Equal(t, order.TransitionTable(), policy.AllowedTransitions(role), role.String())
		}
	})

	t.Run("customers get nothing", func(t *testing.T) {
		allowed := policy.AllowedTransitions(kernel.RoleNone)

		require.Len(t, allowed, len(order.Statuses()))
		for _, targets := range allowed {
			assert.Empty(t, targets)
		}
	})
}

func TestTransitionPolicy_AuthorizeTransition(t *testing.T) {
	policy := services.NewTransitionPolicy()

	tests := []struct {
		name    string
		role    kernel.Role
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{"kitchen starts preparing", kernel.RoleKitchen, order.Pending, order.Preparing, true},
		{"kitchen marks ready", kernel.RoleKitchen, order.Preparing, order.Ready, true},
		{"kitchen cannot deliver", kernel.RoleKitchen, order.Ready, order.Delivered, false},
		{"kitchen cannot cancel", kernel.RoleKitchen, order.Pending, order.Cancelled, false},
		{"attendant delivers", kernel.RoleAttendant, order.Ready, order.Delivered, true},
		{"attendant cancels", kernel.RoleAttendant, order.Preparing, order.Cancelled, true},
		{"admin cancels", kernel.RoleAdmin, order.Ready, order.Cancelled, true},
		{"customer cannot transition", kernel.RoleNone, order.Pending, order.Preparing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.AuthorizeTransition(tt.role, tt.from, tt.to)

			if tt.allowed {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, services.ErrPermissionDenied)
			assert.Contains(t, err.Error(), tt.role.String())
		})
	}
}

func TestTransitionPolicy_Operations(t *testing.T) {
	policy := services.NewTransitionPolicy()

	assert.True(t, policy.CanCreateOrder(kernel.RoleAttendant))
	assert.True(t, policy.CanCreateOrder(kernel.RoleAdmin))
	assert.False(t, policy.CanCreateOrder(kernel.RoleKitchen))
	assert.False(t, policy.CanCreateOrder(kernel.RoleNone))

	assert.True(t, policy.CanRate(kernel.RoleAttendant))
	assert.False(t, policy.CanRate(kernel.RoleKitchen))

	assert.True(t, policy.CanDelete(kernel.RoleAdmin))
	assert.False(t, policy.CanDelete(kernel.RoleKitchen))

	assert.True(t, policy.CanViewOrders(kernel.RoleKitchen))
	assert.False(t, policy.CanViewOrders(kernel.RoleNone))

	assert.True(t, policy.CanManageCatalog(kernel.RoleAdmin))
	assert.False(t, policy.CanManageCatalog(kernel.RoleAttendant))

	require.NoError(t, services.Authorize(true, kernel.RoleAdmin, "rate orders"))
	err := services.Authorize(false, kernel.RoleKitchen, "rate orders")
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
	assert.Equal(t, "permission denied: role kitchen may not rate orders", err.Error())
}
