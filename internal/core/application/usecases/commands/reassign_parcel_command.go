package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReassignParcelCommandIsNotConstructed = errors.New(
		"ReassignParcelCommand must be created via NewReassignParcelCommand constructor",
	)
)

// ReassignParcelCommand requests handing a parcel to a different employee.
type ReassignParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignParcelCommand creates a command to assign employeeID as the
// parcel's responsible employee.
func NewReassignParcelCommand(parcelID, employeeID kernel.UUID) (ReassignParcelCommand, error) {
	cmd := ReassignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setEmployeeID(employeeID),
	); err != nil {
		return ReassignParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignParcelCommand) Validate() error {
	return c.guard.Validate(ErrReassignParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to reassign.
func (c ReassignParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// EmployeeID returns the new responsible employee.
func (c ReassignParcelCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

func (c *ReassignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ReassignParcelCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}
