package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleEscalationJob periodically flags critical orders on their timeline.
// Runs every 15 minutes so stale orders surface without manual sweeps.
type StaleEscalationJob struct {
	handler commands.EscalateStaleOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleEscalationJob creates the escalation sweep job.
func NewStaleEscalationJob(handler commands.EscalateStaleOrdersCommandHandler, logger *slog.Logger) *StaleEscalationJob {
	return &StaleEscalationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "stale_escalation_job"),
	}
}

// Start schedules the escalation sweep every 15 minutes.
func (j *StaleEscalationJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * *", func() {
		ctx := context.Background()

		flagged, err := j.handler.Handle(ctx, commands.NewEscalateStaleOrdersCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale escalation sweep failed", "error", err)
			return
		}

		if flagged > 0 {
			j.logger.InfoContext(ctx, "Stale escalation sweep flagged orders", "flagged", flagged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale escalation job started (running every 15 minutes)")
	return nil
}

// Stop stops the escalation sweep.
func (j *StaleEscalationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale escalation job stopped")
}
