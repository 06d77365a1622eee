package services

import (
	"errors"
	"fmt"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
)

// ErrPermissionDenied is returned when the caller's role may not perform an operation.
var ErrPermissionDenied = errors.New("permission denied")

// TransitionPolicy decides which roles may trigger which status transitions and
// which roles may use the other order operations.
//
// The kitchen moves food through preparation only: Pending -> Preparing -> Ready.
// Attendants and admins may use every edge of order.TransitionTable, including
// delivering and cancelling. Customers (RoleNone) may not transition at all.
type TransitionPolicy struct {
	restricted map[kernel.Role]map[order.Status][]order.Status
}

// NewTransitionPolicy creates the default policy.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		restricted: map[kernel.Role]map[order.Status][]order.Status{
			kernel.RoleKitchen: {
				order.Pending:   {order.Preparing},
				order.Preparing: {order.Ready},
			},
		},
	}
}

// AllowedTransitions filters order.TransitionTable down to the edges role may use.
// Every valid status is present as a key so callers can render a full board.
func (p TransitionPolicy) AllowedTransitions(role kernel.Role) map[order.Status][]order.Status {
	table := order.TransitionTable()
	allowed := make(map[order.Status][]order.Status, len(table))
	for from, targets := range table {
		filtered := make([]order.Status, 0, len(targets))
		for _, to := range targets {
			if p.CanTransition(role, from, to) {
				filtered = append(filtered, to)
			}
		}
		allowed[from] = filtered
	}
	return allowed
}

// CanTransition reports whether role may move an order from -> to. It answers the
// authorization question only; workflow legality is checked by the aggregate.
func (p TransitionPolicy) CanTransition(role kernel.Role, from, to order.Status) bool {
	switch role {
	case kernel.RoleAdmin, kernel.RoleAttendant:
		return true
	case kernel.RoleKitchen:
		for _, candidate := range p.restricted[role][from] {
			if candidate == to {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AuthorizeTransition wraps CanTransition with a descriptive ErrPermissionDenied.
func (p TransitionPolicy) AuthorizeTransition(role kernel.Role, from, to order.Status) error {
	if !p.CanTransition(role, from, to) {
		return fmt.Errorf("%w: role %s may not move an order from %s to %s", ErrPermissionDenied, role, from, to)
	}
	return nil
}

// CanCreateOrder reports whether role may take new orders.
func (p TransitionPolicy) CanCreateOrder(role kernel.Role) bool {
	return role == kernel.RoleAdmin || role == kernel.RoleAttendant
}

// CanRate reports whether role may record customer feedback.
func (p TransitionPolicy) CanRate(role kernel.Role) bool {
	return role == kernel.RoleAdmin || role == kernel.RoleAttendant
}

// CanDelete reports whether role may delete pending orders.
func (p TransitionPolicy) CanDelete(role kernel.Role) bool {
	return role == kernel.RoleAdmin || role == kernel.RoleAttendant
}

// CanViewOrders reports whether role may read orders and the active board.
func (p TransitionPolicy) CanViewOrders(role kernel.Role) bool {
	return role.IsStaff()
}

// CanManageCatalog reports whether role may create or change products.
func (p TransitionPolicy) CanManageCatalog(role kernel.Role) bool {
	return role == kernel.RoleAdmin
}

// Authorize returns a wrapped ErrPermissionDenied naming action when allowed is false.
func Authorize(allowed bool, role kernel.Role, action string) error {
	if !allowed {
		return fmt.Errorf("%w: role %s may not %s", ErrPermissionDenied, role, action)
	}
	return nil
}
