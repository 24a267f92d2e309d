package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reminderSweepJob *ReminderSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	dueRemindersHandler queries.DueRemindersQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reminderSweepJob: NewReminderSweepJob(dueRemindersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reminderSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start reminder sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reminderSweepJob.Stop()
}
