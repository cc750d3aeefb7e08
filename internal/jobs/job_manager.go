package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleEscalationJob *StaleEscalationJob
	attentionReportJob *AttentionReportJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes use case handlers as dependencies to wire up the job execution.
func NewJobManager(
	escalationHandler commands.EscalateStaleOrdersCommandHandler,
	attentionHandler queries.GetAttentionOrdersQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleEscalationJob: NewStaleEscalationJob(escalationHandler, logger),
		attentionReportJob: NewAttentionReportJob(attentionHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleEscalationJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale escalation job: %w", err)
	}

	if err := jm.attentionReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleEscalationJob.Stop()
		return fmt.Errorf("failed to start attention report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleEscalationJob.Stop()
	jm.attentionReportJob.Stop()
}
