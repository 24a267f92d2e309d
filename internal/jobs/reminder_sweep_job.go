package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/pipeline"

	"github.com/robfig/cron/v3"
)

// ReminderSweepJob surfaces postponed parcels whose reminder falls due within
// the urgency window. Runs every minute; the sweep only reports, operators act
// on the urgency feed themselves.
type ReminderSweepJob struct {
	handler queries.DueRemindersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReminderSweepJob creates the sweep over the due-reminders feed.
func NewReminderSweepJob(handler queries.DueRemindersQueryHandler, logger *slog.Logger) *ReminderSweepJob {
	return &ReminderSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reminder_sweep_job"),
	}
}

// Start begins the reminder sweep to run every minute.
func (j *ReminderSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewDueRemindersQuery(time.Now().UTC())
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Reminder sweep job failed", "error", queryErr)
			return
		}

		reminders, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Reminder sweep job failed", "error", handleErr)
			return
		}

		if len(reminders) == 0 {
			return
		}

		urgent := make(map[string]int)
		overdue := 0
		for _, reminder := range reminders {
			urgent[pipeline.Variant(reminder.Variant).String()]++
			if reminder.Overdue {
				overdue++
			}
		}

		j.logger.InfoContext(ctx, "Urgent reminders due",
			"total", len(reminders),
			"overdue", overdue,
			"by_pipeline", urgent,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reminder sweep job started (running every minute)")
	return nil
}

// Stop stops the reminder sweep job.
func (j *ReminderSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reminder sweep job stopped")
}
