package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBulkPrepareCommandIsNotConstructed = errors.New(
		"BulkPrepareCommand must be created via NewBulkPrepareCommand constructor",
	)
)

// BulkPrepareCommand requests moving every confirmed parcel of a product into
// packaging. Packaging crews work one product at a time, so the batch is keyed
// by pipeline variant and product reference.
type BulkPrepareCommand struct { //nolint:recvcheck //using for validation
	variant    pipeline.Variant
	productRef string

	guard guard.ConstructorGuard
}

// NewBulkPrepareCommand creates a command to start packaging for every
// confirmed parcel carrying productRef in the given pipeline.
func NewBulkPrepareCommand(variant pipeline.Variant, productRef string) (BulkPrepareCommand, error) {
	cmd := BulkPrepareCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVariant(variant),
		cmd.setProductRef(productRef),
	); err != nil {
		return BulkPrepareCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkPrepareCommand) Validate() error {
	return c.guard.Validate(ErrBulkPrepareCommandIsNotConstructed)
}

// Variant returns the pipeline the batch targets.
func (c BulkPrepareCommand) Variant() pipeline.Variant {
	return c.variant
}

// ProductRef returns the product whose parcels are being prepared.
func (c BulkPrepareCommand) ProductRef() string {
	return c.productRef
}

func (c *BulkPrepareCommand) setVariant(variant pipeline.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	c.variant = variant
	return nil
}

func (c *BulkPrepareCommand) setProductRef(productRef string) error {
	if strings.TrimSpace(productRef) == "" {
		return errs.NewValueIsRequiredError("productRef")
	}

	c.productRef = productRef
	return nil
}
