// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment workflow.
//
// # Available Jobs
//
// 1. StaleEscalationJob - Runs every 15 minutes to flag critically stale orders on their timeline
// 2. AttentionReportJob - Runs hourly to log a per-urgency snapshot of orders needing attention
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(escalationHandler, attentionHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The escalation sweep runs on "*/15 * * * *" and the attention report on
// "0 * * * *". Escalation writes are idempotent: an order already carrying the
// escalation timeline entry is skipped on later sweeps.
//
// # Error Handling
//
// - Both jobs log failures and wait for the next tick rather than retrying
// - Failed job starts will stop any already running jobs
package jobs
