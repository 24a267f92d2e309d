package settlement

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the cash-handoff state of a settlement record, tracked
// independently of the parcel's lifecycle stage.
//
// State transitions:
//
//	InTransit ──> ToSettle ──> PendingApproval ──> Settled
//
// The machine is strictly forward-only: there is no regression path and no
// rejection status. Every transition method fails when called from any other
// source status, which is the expected outcome when two actors race on the
// same record: exactly one advances it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// InTransit means the parcel's cash may already be in the driver's hands,
	// but the system only trusts the delivered signal as the collection
	// confirmation point.
	InTransit

	// ToSettle means the delivered signal was confirmed and the cash is
	// awaiting a settlement request from the driver.
	ToSettle

	// PendingApproval means the driver requested settlement and a manager
	// must approve the handoff.
	PendingApproval

	// Settled is the final state: the cash handoff was approved and the
	// record is closed. It persists as the audit trail for the driver.
	Settled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		InTransit:       "InTransit",
		ToSettle:        "ToSettle",
		PendingApproval: "PendingApproval",
		Settled:         "Settled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		InTransit:       "InTransit",
		ToSettle:        "ToSettle",
		PendingApproval: "PendingApproval",
		Settled:         "Settled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid settlement status", s))
	}
	return nil
}

// StatusFromString resolves a status name back to its Status value.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid settlement status", s))
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status closes the record.
func (s Status) IsTerminal() bool {
	return s == Settled
}

// MarkToSettle transitions InTransit to ToSettle.
func (s Status) MarkToSettle() (Status, error) {
	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to mark to settle", s.String()))
	}
	return ToSettle, nil
}

// RequestApproval transitions ToSettle to PendingApproval.
func (s Status) RequestApproval() (Status, error) {
	if s != ToSettle {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to request approval", s.String()))
	}
	return PendingApproval, nil
}

// Approve transitions PendingApproval to Settled.
// Any other source status is a NotPending condition for the caller.
func (s Status) Approve() (Status, error) {
	if s != PendingApproval {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s.String()))
	}
	return Settled, nil
}
