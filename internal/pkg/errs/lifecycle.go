package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the parcel lifecycle and settlement workflows.
// All of them are expected, recoverable conditions: a caller that receives one
// retries with corrected input or simply re-reads the current state.
var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrIncompleteScan    = errors.New("incomplete scan")
	ErrTerminalState     = errors.New("terminal state")
	ErrUnknownPipeline   = errors.New("unknown pipeline")
	ErrNothingToSettle   = errors.New("nothing to settle")
	ErrNotPending        = errors.New("record is not pending approval")
)

// IllegalTransitionError indicates that a stage is not reachable from the
// parcel's current stage under its pipeline's transition graph.
type IllegalTransitionError struct {
	From string
	To   string
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given stages.
func NewIllegalTransitionError(from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// IncompleteScanError indicates a dispatch attempt while packaging lines
// remain unscanned. The expected outcome of a stale UI request.
type IncompleteScanError struct {
	ParcelID  string
	Remaining int
}

// NewIncompleteScanError creates an IncompleteScanError for the given parcel.
func NewIncompleteScanError(parcelID string, remaining int) *IncompleteScanError {
	return &IncompleteScanError{ParcelID: parcelID, Remaining: remaining}
}

func (e *IncompleteScanError) Error() string {
	return sanitize(fmt.Sprintf("%s: parcel %s has %d unscanned lines", ErrIncompleteScan, e.ParcelID, e.Remaining))
}

func (e *IncompleteScanError) Unwrap() error {
	return ErrIncompleteScan
}

// TerminalStateError indicates an operation on a parcel that has already
// reached a terminal stage.
type TerminalStateError struct {
	ParcelID string
	Stage    string
}

// NewTerminalStateError creates a TerminalStateError for the given parcel and stage.
func NewTerminalStateError(parcelID, stage string) *TerminalStateError {
	return &TerminalStateError{ParcelID: parcelID, Stage: stage}
}

func (e *TerminalStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: parcel %s is in %s", ErrTerminalState, e.ParcelID, e.Stage))
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

// UnknownPipelineError indicates a pipeline identifier that is not registered.
type UnknownPipelineError struct {
	Value any
}

// NewUnknownPipelineError creates an UnknownPipelineError for the given identifier.
func NewUnknownPipelineError(value any) *UnknownPipelineError {
	return &UnknownPipelineError{Value: value}
}

func (e *UnknownPipelineError) Error() string {
	return sanitize(fmt.Sprintf("%s: %v", ErrUnknownPipeline, e.Value))
}

func (e *UnknownPipelineError) Unwrap() error {
	return ErrUnknownPipeline
}

// NothingToSettleError indicates a settlement request for a driver with no
// records ready to settle.
type NothingToSettleError struct {
	DriverID string
}

// NewNothingToSettleError creates a NothingToSettleError for the given driver.
func NewNothingToSettleError(driverID string) *NothingToSettleError {
	return &NothingToSettleError{DriverID: driverID}
}

func (e *NothingToSettleError) Error() string {
	return sanitize(fmt.Sprintf("%s: driver %s", ErrNothingToSettle, e.DriverID))
}

func (e *NothingToSettleError) Unwrap() error {
	return ErrNothingToSettle
}

// NotPendingError indicates an approval attempt on a settlement record that is
// not in the pending-approval status.
type NotPendingError struct {
	RecordID string
	Status   string
}

// NewNotPendingError creates a NotPendingError for the given record and status.
func NewNotPendingError(recordID, status string) *NotPendingError {
	return &NotPendingError{RecordID: recordID, Status: status}
}

func (e *NotPendingError) Error() string {
	return sanitize(fmt.Sprintf("%s: record %s is in %s", ErrNotPending, e.RecordID, e.Status))
}

func (e *NotPendingError) Unwrap() error {
	return ErrNotPending
}
