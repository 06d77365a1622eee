package jobs

import (
	"context"
	"log/slog"

	"foodtruck/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "@every 5s"

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending outbox messages on a schedule. A run is
// skipped while the previous one is still publishing.
type OutboxRelayJob struct {
	handler   outboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob accepts six-field cron expressions (with seconds) and
// descriptors such as "@every 5s". An empty schedule uses DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(handler outboxRelayer, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}

	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays one batch.
func (j *OutboxRelayJob) Run() {
	ctx := context.Background()

	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid outbox relay command", "error", err)
		return
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "published", published)
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
