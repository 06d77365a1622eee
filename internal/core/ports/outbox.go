package ports

import (
	"context"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	Type        string
	AggregateID string
	Payload     []byte
	OccurredAt  time.Time
	SentAt      *time.Time
}

// OutboxRepository stores events written in the same transaction as the state
// change that produced them.
type OutboxRepository interface {
	// Add appends messages to the outbox.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// Pending returns up to limit unsent messages, oldest first.
	Pending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent stamps messages as published.
	MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
