package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrScanLineCommandIsNotConstructed = errors.New(
		"ScanLineCommand must be created via NewScanLineCommand constructor",
	)
)

// ScanLineCommand carries one barcode scan from the packaging station.
type ScanLineCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	sku      string

	guard guard.ConstructorGuard
}

// NewScanLineCommand creates a command recording that sku was scanned against
// the parcel's packaging lines.
func NewScanLineCommand(parcelID kernel.UUID, sku string) (ScanLineCommand, error) {
	cmd := ScanLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSKU(sku),
	); err != nil {
		return ScanLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScanLineCommand) Validate() error {
	return c.guard.Validate(ErrScanLineCommandIsNotConstructed)
}

// ParcelID returns the parcel being packaged.
func (c ScanLineCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SKU returns the scanned barcode value.
func (c ScanLineCommand) SKU() string {
	return c.sku
}

func (c *ScanLineCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ScanLineCommand) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}

	c.sku = sku
	return nil
}
