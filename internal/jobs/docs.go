// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the order lifecycle requires.
//
// # Available Jobs
//
// 1. StaleOrderJob - Runs every minute to cancel orders that stayed in
// CREATED longer than the configured TTL without being assigned
//
// # Usage
//
//	job := jobs.NewStaleOrderJob(orders, cancelHandler, systemActor, ttl, logger)
//	if err := job.Start(); err != nil {
//		log.Fatal("Failed to start stale order job:", err)
//	}
//	defer job.Stop()
//
// # Error Handling
//
// The sweep cancels each stale order through the regular cancellation
// handler, so every cancellation is versioned and lands in the history
// ledger as SYSTEM_CANCEL. Version conflicts mean a concurrent writer got
// to the order first and are skipped silently; any other failure is logged
// and the sweep moves on to the next order.
package jobs
