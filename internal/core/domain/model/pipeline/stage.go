package pipeline

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Stage represents a parcel's position in its pipeline's transition graph.
// The value is semantic and shared by both pipeline variants; the variant only
// changes the display name of the stage (see NameFor and Counterpart).
//
// Stage transitions:
//
//	New ──> Confirmed ──┬──> Packaging ──> Dispatched ──┬──> Delivered
//	          ^         ├──> Postponed                  ├──> ReturnPending
//	          │         └──> Cancelled                  ├──> Postponed
//	          │                                         └──> Cancelled
//	          └── Postponed ──┬──> Confirmed
//	                          ├──> Dispatched
//	                          └──> Cancelled
//
// Delivered and Cancelled are terminal. ReturnPending is reachable only from
// Dispatched and has no outgoing transitions. A transition to the current
// stage is not part of the graph; the parcel aggregate treats it as a no-op
// success to support idempotent retries from the UI layer.
type Stage int

const (
	// Unknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	Unknown Stage = iota

	// New is the initial stage assigned by the confirmation workflow.
	New

	// Confirmed means the client confirmed the order; the parcel is waiting
	// to be prepared (the "to-prepare" queue the packaging screen groups).
	Confirmed

	// Postponed means the parcel was rescheduled; it carries an optional
	// reminder timestamp and may re-enter confirmation or dispatch.
	Postponed

	// Packaging is the labeling stage: packaging lines exist and each one
	// must be scan-confirmed before dispatch.
	Packaging

	// Dispatched means the parcel is out with a driver.
	Dispatched

	// ReturnPending means the driver reported the parcel as coming back.
	ReturnPending

	// Delivered is terminal: the parcel reached the client and cash was
	// collected. Entering it triggers settlement tracking.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

// getStageStrings returns a map of Stage values to their default-variant names.
// All stages are included for string conversion.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		Unknown:       "Unknown",
		New:           "New",
		Confirmed:     "Confirmed",
		Postponed:     "Postponed",
		Packaging:     "Packaging",
		Dispatched:    "Dispatched",
		ReturnPending: "ReturnPending",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

// orderedStages returns every valid stage in its semantic pipeline order.
// Both variants expose the same order; only the names differ.
func orderedStages() []Stage {
	return []Stage{New, Confirmed, Postponed, Packaging, Dispatched, ReturnPending, Delivered, Cancelled}
}

// transitionTargets returns the legal targets per source stage.
// Terminal and terminal-adjacent stages have no entry.
func transitionTargets() map[Stage][]Stage {
	return map[Stage][]Stage{
		New:        {Confirmed},
		Confirmed:  {Packaging, Postponed, Cancelled},
		Postponed:  {Confirmed, Dispatched, Cancelled},
		Packaging:  {Dispatched},
		Dispatched: {Delivered, Postponed, Cancelled, ReturnPending},
	}
}

// Validate checks if the Stage value is a member of the pipeline.
// Unknown (0) and out-of-range values are invalid.
func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the default-variant name of the stage.
// Implements fmt.Stringer and is safe to call on any Stage value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the stage closes the parcel's lifecycle.
// Parcels are never deleted; a terminal stage is the closest equivalent.
func (s Stage) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is reachable from s in one step
// under the transition graph. A stage is never reachable from itself here;
// same-stage requests are resolved as no-ops above the graph.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, t := range transitionTargets()[s] {
		if t == target {
			return true
		}
	}
	return false
}
