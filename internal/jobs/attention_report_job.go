package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// AttentionReportJob logs an hourly snapshot of orders needing operator
// attention, grouped by urgency.
type AttentionReportJob struct {
	handler queries.GetAttentionOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAttentionReportJob creates the hourly attention report job.
func NewAttentionReportJob(handler queries.GetAttentionOrdersQueryHandler, logger *slog.Logger) *AttentionReportJob {
	return &AttentionReportJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "attention_report_job"),
	}
}

// Start schedules the attention report at the top of every hour.
func (j *AttentionReportJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		rows, err := j.handler.Handle(ctx, queries.NewGetAttentionOrdersQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Attention report failed", "error", err)
			return
		}

		counts := map[string]int{}
		for _, row := range rows {
			counts[row.Urgency]++
		}

		j.logger.InfoContext(ctx, "Attention report",
			"total", len(rows),
			"critical", counts["critical"],
			"high", counts["high"],
			"medium", counts["medium"],
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Attention report job started (running hourly)")
	return nil
}

// Stop stops the attention report job.
func (j *AttentionReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Attention report job stopped")
}
