package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionParcelCommandIsNotConstructed = errors.New(
		"TransitionParcelCommand must be created via NewTransitionParcelCommand constructor",
	)
)

// TransitionParcelCommand requests moving a parcel to a new stage.
// The target is a semantic stage plus the pipeline namespace the caller
// addressed it in; callers working with display names resolve them through
// the pipeline registry before building the command, and the handler rejects
// the command when the namespace does not match the parcel's own pipeline.
// An optional reminder time is stored when the parcel is being postponed.
type TransitionParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID    kernel.UUID
	variant     pipeline.Variant
	targetStage pipeline.Stage
	reminderAt  *time.Time

	guard guard.ConstructorGuard
}

// NewTransitionParcelCommand creates a command to move a parcel to targetStage
// addressed in the given pipeline namespace.
// reminderAt may be nil; it is only meaningful when postponing.
func NewTransitionParcelCommand(
	parcelID kernel.UUID,
	variant pipeline.Variant,
	targetStage pipeline.Stage,
	reminderAt *time.Time,
) (TransitionParcelCommand, error) {
	cmd := TransitionParcelCommand{
		reminderAt: reminderAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setVariant(variant),
		cmd.setTargetStage(targetStage),
	); err != nil {
		return TransitionParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionParcelCommand) Validate() error {
	return c.guard.Validate(ErrTransitionParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to transition.
func (c TransitionParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Variant returns the pipeline namespace the target stage was addressed in.
func (c TransitionParcelCommand) Variant() pipeline.Variant {
	return c.variant
}

// TargetStage returns the requested destination stage.
func (c TransitionParcelCommand) TargetStage() pipeline.Stage {
	return c.targetStage
}

// ReminderAt returns the follow-up time for postponements, or nil.
func (c TransitionParcelCommand) ReminderAt() *time.Time {
	return c.reminderAt
}

func (c *TransitionParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *TransitionParcelCommand) setVariant(variant pipeline.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	c.variant = variant
	return nil
}

func (c *TransitionParcelCommand) setTargetStage(targetStage pipeline.Stage) error {
	if err := targetStage.Validate(); err != nil {
		return err
	}
	if targetStage == pipeline.New {
		return errs.NewValueIsInvalidError("targetStage")
	}

	c.targetStage = targetStage
	return nil
}
