package outbox

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/ports"
)

// LogPublisher writes outbox messages to the log instead of a broker. It is
// used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	p.logger.InfoContext(ctx, "event published",
		"id", message.ID.String(),
		"type", message.Type,
		"aggregate_id", message.AggregateID,
		"payload", string(message.Payload),
	)
	return nil
}
