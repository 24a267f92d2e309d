// Package guard provides a defensive construction check for value objects,
// commands, and queries. Embedding a ConstructorGuard in a struct makes
// zero-value instances detectable, so objects that bypassed their constructor
// fail validation instead of carrying unvalidated state through the engine.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// supplied for a zero-value guard. Validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. The zero value is invalid.
//
// Example:
//
//	type ScanLineCommand struct {
//	    parcelID kernel.UUID
//	    sku      string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewScanLineCommand(parcelID kernel.UUID, sku string) (ScanLineCommand, error) {
//	    ...
//	    return ScanLineCommand{parcelID: parcelID, sku: sku, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ScanLineCommand) Validate() error {
//	    return c.guard.Validate(ErrScanLineCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object was created through its
// constructor. Returns validationError for a zero-value guard, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
