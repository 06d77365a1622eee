package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"
)

// RelayOutboxCommandHandler publishes pending outbox messages and marks them sent.
//
// Messages are published in the order they were written. Publishing stops at the
// first failure so later events never overtake earlier ones; messages published
// before the failure are still marked sent. Delivery is at least once: a crash
// between publish and commit republishes the batch.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "relay_outbox_handler"),
	}
}

// Handle returns the number of messages published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.Pending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	sent := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, msg := range pending {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", msg.Type, msg.ID, publishErr)
			break
		}
		sent = append(sent, msg.ID)
	}

	if len(sent) > 0 {
		if err = outbox.MarkSent(ctx, sent, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
		h.logger.InfoContext(ctx, "Outbox messages relayed", "count", len(sent))
	}

	return len(sent), publishErr
}
