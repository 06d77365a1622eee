package order

import (
	"time"

	"foodtruck/internal/core/domain/model/kernel"
)

// EventType names a domain event. The value doubles as the message routing key.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderRated         EventType = "order.rated"
	EventOrderDeleted       EventType = "order.deleted"
)

// Event is a fact recorded by the aggregate. Events are drained by the unit of
// work into the outbox in the same transaction as the state change.
type Event struct {
	ID             kernel.UUID
	Type           EventType
	OrderID        kernel.ULID
	Locator        string
	Status         Status
	PreviousStatus Status
	Total          string
	Rating         int
	OccurredAt     time.Time
}

func (o *Order) record(eventType EventType, previous Status) {
	event := Event{
		ID:             kernel.NewUUID(),
		Type:           eventType,
		OrderID:        o.id,
		Locator:        o.locator.String(),
		Status:         o.status,
		PreviousStatus: previous,
		Total:          o.total.String(),
		OccurredAt:     o.updatedAt,
	}
	if o.rating != nil {
		event.Rating = o.rating.Value()
	}
	o.events = append(o.events, event)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	return append([]Event{}, o.events...)
}

// ClearDomainEvents forgets recorded events once they have been persisted.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}
