package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// TransitionParcelCommandHandler handles stage transitions.
// The aggregate enforces the stage graph and the scan gate; the handler adds
// the settlement side effect: a parcel delivered with collected cash opens an
// InTransit settlement record for its driver in the same transaction.
//
// Example:
//
//	handler := NewTransitionParcelCommandHandler(uowFactory, commissionPolicy)
//	cmd, _ := NewTransitionParcelCommand(parcelID, pipeline.Default, pipeline.Delivered, nil)
//
//	updated, err := handler.Handle(ctx, cmd)
type TransitionParcelCommandHandler struct {
	uowFactory       UoWFactory
	commissionPolicy services.CommissionPolicy
}

// NewTransitionParcelCommandHandler creates a handler for stage transitions.
// The commission policy determines the flat commission written into records
// opened on delivery.
func NewTransitionParcelCommandHandler(
	uowFactory UoWFactory,
	commissionPolicy services.CommissionPolicy,
) TransitionParcelCommandHandler {
	return TransitionParcelCommandHandler{
		uowFactory:       uowFactory,
		commissionPolicy: commissionPolicy,
	}
}

// Handle moves the parcel to the target stage.
// A target addressed in the other pipeline's namespace is rejected after the
// parcel is loaded and its own pipeline is known.
// Readiness for dispatch is re-checked inside the transaction, so a stale
// client cannot dispatch a parcel whose packaging regressed. Returns the
// updated parcel.
func (h *TransitionParcelCommandHandler) Handle(
	ctx context.Context, cmd TransitionParcelCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	// A stage addressed in the other pipeline's namespace is not a valid
	// target for this parcel, even when the semantic stage exists in both.
	if p.Variant() != cmd.Variant() {
		return nil, errs.NewValueIsInvalidError("targetStage")
	}

	if err = p.Transition(cmd.TargetStage(), cmd.ReminderAt()); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Stage() == pipeline.Delivered {
		if err = h.openSettlement(ctx, uow, p); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// openSettlement creates the settlement record for a delivered parcel.
// Cashless parcels and parcels without an assigned driver are skipped, and an
// already-open record makes the operation a no-op, so retried delivery
// transitions never duplicate records.
func (h *TransitionParcelCommandHandler) openSettlement(
	ctx context.Context, uow UoW, p *parcel.Parcel,
) error {
	if p.Price().IsZero() || p.Employee() == nil {
		return nil
	}

	settlementRepo := uow.SettlementRepository()

	_, err := settlementRepo.GetByParcelID(ctx, p.ID())
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	record, err := settlement.NewRecord(
		kernel.NewUUID(),
		p.ID(),
		*p.Employee(),
		p.Price(),
		h.commissionPolicy.RateFor(p.Variant()),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return settlementRepo.Add(ctx, record)
}
