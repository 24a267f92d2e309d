package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/parcel"
)

// ReassignParcelCommandHandler handles employee reassignment.
// Reassignment never changes the stage; the aggregate rejects it only for
// parcels that already reached a terminal stage.
type ReassignParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewReassignParcelCommandHandler creates a handler for reassignment.
func NewReassignParcelCommandHandler(uowFactory ParcelUoWFactory) ReassignParcelCommandHandler {
	return ReassignParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the employee and persists the parcel. Returns the updated
// parcel.
func (h *ReassignParcelCommandHandler) Handle(
	ctx context.Context, cmd ReassignParcelCommand,
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

	if err = p.Reassign(cmd.EmployeeID()); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
