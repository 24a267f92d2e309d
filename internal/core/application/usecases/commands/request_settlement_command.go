package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRequestSettlementCommandIsNotConstructed = errors.New(
		"RequestSettlementCommand must be created via NewRequestSettlementCommand constructor",
	)
)

// RequestSettlementCommand requests a settlement voucher for everything a
// driver currently owes. All of the driver's ToSettle records move to
// PendingApproval together.
type RequestSettlementCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestSettlementCommand creates a command for the driver's settlement
// request.
func NewRequestSettlementCommand(driverID kernel.UUID) (RequestSettlementCommand, error) {
	cmd := RequestSettlementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDriverID(driverID); err != nil {
		return RequestSettlementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestSettlementCommand) Validate() error {
	return c.guard.Validate(ErrRequestSettlementCommandIsNotConstructed)
}

// DriverID returns the driver requesting settlement.
func (c RequestSettlementCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *RequestSettlementCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
