package queries

import (
	"context"
	"sort"

	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"
)

// GetTransitionTableQueryHandler exposes the workflow so presentation layers can
// render only the actions a caller may take.
type GetTransitionTableQueryHandler struct {
	policy services.TransitionPolicy
}

func NewGetTransitionTableQueryHandler(policy services.TransitionPolicy) GetTransitionTableQueryHandler {
	return GetTransitionTableQueryHandler{policy: policy}
}

// Handle returns one entry per status in workflow order.
func (h GetTransitionTableQueryHandler) Handle(_ context.Context, query GetTransitionTableQuery) ([]TransitionTableEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	table := order.TransitionTable()
	if role := query.Role(); role != nil {
		table = h.policy.AllowedTransitions(*role)
	}

	entries := make([]TransitionTableEntry, 0, len(table))
	for from, to := range table {
		entries = append(entries, TransitionTableEntry{From: from, To: to, Terminal: from.IsTerminal()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].From < entries[j].From })
	return entries, nil
}
