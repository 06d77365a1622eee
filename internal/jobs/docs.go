// Package jobs provides scheduled background tasks for the order engine.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob publishes domain events stored in the outbox to the message
// broker. It runs every five seconds unless OUTBOX_RELAY_SCHEDULE overrides it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayOutboxHandler, cfg.OutboxRelaySchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay is logged and retried on the next tick; unsent messages stay
// in the outbox.
package jobs
