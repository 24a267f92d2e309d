package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
)

// CreateParcelCommand represents a request from the confirmation workflow to
// register a new parcel in a pipeline. The draft's field-level validation
// (client, phone, product, unit count, price) happens in the parcel
// constructor, so the command and the aggregate reject the same drafts.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(parcelID, pipeline.Default, draft)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	variant  pipeline.Variant
	draft    parcel.Draft

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new parcel.
// Validates the parcel ID and the pipeline variant; the draft itself is
// validated by the aggregate when the handler executes.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	variant pipeline.Variant,
	draft parcel.Draft,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		draft: draft,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setVariant(variant),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier for the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Variant returns the pipeline the parcel belongs to.
func (c CreateParcelCommand) Variant() pipeline.Variant {
	return c.variant
}

// Draft returns the client-entered parcel fields.
func (c CreateParcelCommand) Draft() parcel.Draft {
	return c.draft
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setVariant(variant pipeline.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	c.variant = variant
	return nil
}
