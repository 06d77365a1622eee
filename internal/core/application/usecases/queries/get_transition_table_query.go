package queries

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/pkg/guard"
)

var ErrGetTransitionTableQueryIsNotConstructed = errors.New(
	"GetTransitionTableQuery must be created via NewGetTransitionTableQuery constructor",
)

// GetTransitionTableQuery retrieves the status workflow, optionally narrowed to
// the transitions a role may trigger.
type GetTransitionTableQuery struct {
	role *kernel.Role

	guard guard.ConstructorGuard
}

// NewGetTransitionTableQuery asks for the full workflow.
func NewGetTransitionTableQuery() GetTransitionTableQuery {
	return GetTransitionTableQuery{guard: guard.NewConstructorGuard()}
}

// NewGetTransitionTableQueryForRole asks for the edges role may use.
func NewGetTransitionTableQueryForRole(role kernel.Role) GetTransitionTableQuery {
	return GetTransitionTableQuery{role: &role, guard: guard.NewConstructorGuard()}
}

func (q GetTransitionTableQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitionTableQueryIsNotConstructed)
}

// Role returns the role filter, or nil for the full workflow.
func (q GetTransitionTableQuery) Role() *kernel.Role {
	return q.role
}

// TransitionTableEntry lists the statuses reachable from one status.
type TransitionTableEntry struct {
	From     order.Status
	To       []order.Status
	Terminal bool
}
