package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrMarkReadyToSettleCommandIsNotConstructed = errors.New(
		"MarkReadyToSettleCommand must be created via NewMarkReadyToSettleCommand constructor",
	)
)

// MarkReadyToSettleCommand requests confirming that a driver has returned
// from a route, moving their in-transit settlement records to ToSettle.
type MarkReadyToSettleCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReadyToSettleCommand creates a command for the driver's route return.
func NewMarkReadyToSettleCommand(driverID kernel.UUID) (MarkReadyToSettleCommand, error) {
	cmd := MarkReadyToSettleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDriverID(driverID); err != nil {
		return MarkReadyToSettleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyToSettleCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyToSettleCommandIsNotConstructed)
}

// DriverID returns the driver whose records are being advanced.
func (c MarkReadyToSettleCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *MarkReadyToSettleCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
