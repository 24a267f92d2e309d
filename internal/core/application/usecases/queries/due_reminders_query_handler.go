package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DueRemindersQueryHandler reads the urgency feed from the database.
type DueRemindersQueryHandler struct {
	db *gorm.DB
}

// NewDueRemindersQueryHandler creates a handler for the urgency feed.
func NewDueRemindersQueryHandler(db *gorm.DB) DueRemindersQueryHandler {
	return DueRemindersQueryHandler{db: db}
}

// Handle returns postponed parcels whose reminder falls within the urgency
// window of the query's evaluation time, most urgent first.
func (h DueRemindersQueryHandler) Handle(
	ctx context.Context,
	query DueRemindersQuery,
) ([]DueReminderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := query.Now().Add(parcel.UrgencyWindow)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			variant,
			client_name,
			phone,
			reminder_at
		FROM parcels
		WHERE stage = ?
			AND reminder_at IS NOT NULL
			AND reminder_at <= ?
		ORDER BY reminder_at
	`, int(pipeline.Postponed), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := make([]DueReminderResponse, 0)

	for rows.Next() {
		var resp DueReminderResponse
		var id uuid.UUID
		var variant int
		var reminderAt time.Time

		if err = rows.Scan(&id, &variant, &resp.ClientName, &resp.Phone, &reminderAt); err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID
		resp.Variant = variant
		resp.ReminderAt = reminderAt
		resp.Overdue = reminderAt.Before(query.Now())

		stageName, nameErr := pipeline.NameFor(pipeline.Variant(variant), pipeline.Postponed)
		if nameErr != nil {
			return nil, nameErr
		}
		resp.StageName = stageName

		reminders = append(reminders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reminders, nil
}
