// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two groups of errors live here:
//   - Generic validation failures (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError) raised while constructing
//     value objects, aggregates, commands, and queries.
//   - The lifecycle taxonomy (IllegalTransitionError, IncompleteScanError,
//     TerminalStateError, UnknownPipelineError, NothingToSettleError,
//     NotPendingError) raised by the parcel stage machine and the settlement
//     engine. Every one of these is an expected, recoverable condition that the
//     caller surfaces for retry or user correction; none represents a
//     programming fault.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrIllegalTransition)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classification works
//
// A storage failure while committing a transition is deliberately not part of
// this taxonomy: it propagates opaquely from the persistence adapter and the
// unit of work guarantees the record keeps its pre-transition state.
package errs
