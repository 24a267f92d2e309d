package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApproveSettlementCommandIsNotConstructed = errors.New(
		"ApproveSettlementCommand must be created via NewApproveSettlementCommand constructor",
	)
)

// ApproveSettlementCommand carries the accountant's approval of counted cash.
// The batch may span drivers; each record is approved independently.
type ApproveSettlementCommand struct { //nolint:recvcheck //using for validation
	recordIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveSettlementCommand creates a command approving the given
// settlement records. At least one record is required.
func NewApproveSettlementCommand(recordIDs []kernel.UUID) (ApproveSettlementCommand, error) {
	cmd := ApproveSettlementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRecordIDs(recordIDs); err != nil {
		return ApproveSettlementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveSettlementCommand) Validate() error {
	return c.guard.Validate(ErrApproveSettlementCommandIsNotConstructed)
}

// RecordIDs returns the settlement records to approve.
func (c ApproveSettlementCommand) RecordIDs() []kernel.UUID {
	return c.recordIDs
}

func (c *ApproveSettlementCommand) setRecordIDs(recordIDs []kernel.UUID) error {
	if len(recordIDs) == 0 {
		return errs.NewValueIsRequiredError("recordIDs")
	}
	for _, recordID := range recordIDs {
		if err := recordID.Validate(); err != nil {
			return err
		}
	}

	c.recordIDs = recordIDs
	return nil
}
