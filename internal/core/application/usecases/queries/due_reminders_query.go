package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDueRemindersQueryIsNotConstructed = errors.New(
		"DueRemindersQuery must be created via NewDueRemindersQuery constructor",
	)
)

// DueRemindersQuery finds postponed parcels whose follow-up time falls within
// the urgency window. Past-due reminders stay in the feed until the parcel
// moves on.
type DueRemindersQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewDueRemindersQuery creates a query evaluated at the given time.
func NewDueRemindersQuery(now time.Time) (DueRemindersQuery, error) {
	if now.IsZero() {
		return DueRemindersQuery{}, errs.NewValueIsRequiredError("now")
	}

	return DueRemindersQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DueRemindersQuery) Validate() error {
	return q.guard.Validate(ErrDueRemindersQueryIsNotConstructed)
}

// Now returns the evaluation time.
func (q DueRemindersQuery) Now() time.Time {
	return q.now
}

// DueReminderResponse represents one parcel needing follow-up.
type DueReminderResponse struct {
	ID         kernel.UUID
	Variant    int
	StageName  string
	ClientName string
	Phone      string
	ReminderAt time.Time
	// Overdue is true once the follow-up time has already passed.
	Overdue bool
}
