// Package outbox turns domain events into outbox messages. Both unit of work
// implementations use it so the published payload does not depend on the store.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/ports"
)

// EventSource is an aggregate that records domain events.
type EventSource interface {
	DomainEvents() []order.Event
	ClearDomainEvents()
}

// OrderEventPayload is the JSON body of every order event.
type OrderEventPayload struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	Locator        string    `json:"locator"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Total          string    `json:"total"`
	Rating         int       `json:"rating,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// FromEvents serializes events in the order they were recorded.
func FromEvents(events []order.Event) ([]ports.OutboxMessage, error) {
	messages := make([]ports.OutboxMessage, 0, len(events))
	for _, event := range events {
		payload := OrderEventPayload{
			EventID:    event.ID.String(),
			Type:       string(event.Type),
			OrderID:    event.OrderID.String(),
			Locator:    event.Locator,
			Status:     event.Status.String(),
			Total:      event.Total,
			Rating:     event.Rating,
			OccurredAt: event.OccurredAt,
		}
		if event.PreviousStatus != order.Unknown {
			payload.PreviousStatus = event.PreviousStatus.String()
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s event: %w", event.Type, err)
		}

		messages = append(messages, ports.OutboxMessage{
			ID:          event.ID,
			Type:        string(event.Type),
			AggregateID: event.OrderID.String(),
			Payload:     body,
			OccurredAt:  event.OccurredAt,
		})
	}
	return messages, nil
}

// Drain collects the pending events of every source and clears them.
// Sources are cleared only when all of them serialized successfully.
func Drain(sources []EventSource) ([]ports.OutboxMessage, error) {
	var messages []ports.OutboxMessage
	for _, source := range sources {
		batch, err := FromEvents(source.DomainEvents())
		if err != nil {
			return nil, err
		}
		messages = append(messages, batch...)
	}
	for _, source := range sources {
		source.ClearDomainEvents()
	}
	return messages, nil
}
