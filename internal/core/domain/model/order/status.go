package order

import (
	"errors"
	"fmt"
	"strings"

	"foodtruck/internal/pkg/errs"
)

// ErrInvalidTransition is matched by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> Delivered
//	   │            │           │
//	   └────────────┴───────────┴────> Cancelled
//
// There are no self loops: requesting the current status is an invalid transition.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the entry state of every new order.
	Pending

	// Preparing means the kitchen has started on the order.
	Preparing

	// Ready means the order is waiting at the counter.
	Ready

	// Delivered is the terminal "fulfilled" state. Only delivered orders can be rated.
	Delivered

	// Cancelled is the terminal state for abandoned orders.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Preparing: "PREPARING",
		Ready:     "READY",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// getTransitions lists the allowed edges of the workflow. Terminal statuses have none.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// Statuses returns every valid status in workflow order.
func Statuses() []Status {
	return []Status{Pending, Preparing, Ready, Delivered, Cancelled}
}

// TransitionTable returns a fresh copy of the workflow: for every valid status, the
// statuses it may move to. Callers may mutate the result freely.
//
// Authorization layers use it to render or gate actions without re-deriving the rules.
func TransitionTable() map[Status][]Status {
	table := make(map[Status][]Status, len(Statuses()))
	for from, to := range getTransitions() {
		table[from] = append([]Status{}, to...)
	}
	return table
}

// ParseStatus maps the upper-case wire name ("PREPARING") to a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range Statuses() {
		if status.String() == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the five workflow states.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the order is still in progress. Active orders hold their
// locator; terminal orders release it.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing || s == Ready
}

// CanTransitionTo reports whether s -> next is an edge of the workflow.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range getTransitions()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when s -> next is allowed, or an *InvalidTransitionError.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, &InvalidTransitionError{From: s, To: next}
	}
	return next, nil
}

// InvalidTransitionError names both ends of a rejected transition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
