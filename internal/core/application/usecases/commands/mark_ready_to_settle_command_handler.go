package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/core/domain/model/settlement"
)

// MarkReadyToSettleCommandHandler handles the driver's return from a route.
// Each in-transit record is advanced to ToSettle only after re-checking that
// its parcel is actually delivered; records for parcels still on the road
// stay in transit.
type MarkReadyToSettleCommandHandler struct {
	uowFactory UoWFactory
}

// NewMarkReadyToSettleCommandHandler creates a handler for route returns.
func NewMarkReadyToSettleCommandHandler(uowFactory UoWFactory) MarkReadyToSettleCommandHandler {
	return MarkReadyToSettleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle advances the driver's eligible records to ToSettle.
// Returns how many records were advanced; zero is not an error, a driver may
// return with nothing to hand over.
func (h *MarkReadyToSettleCommandHandler) Handle(
	ctx context.Context, cmd MarkReadyToSettleCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settlementRepo := uow.SettlementRepository()
	records, err := settlementRepo.GetAllByDriverInStatus(ctx, cmd.DriverID(), settlement.InTransit)
	if err != nil {
		return 0, err
	}

	parcelRepo := uow.ParcelRepository()
	advanced := 0

	for _, record := range records {
		p, err := parcelRepo.Get(ctx, record.ParcelID())
		if err != nil {
			return 0, err
		}
		if p.Stage() != pipeline.Delivered {
			continue
		}

		if err = record.MarkToSettle(); err != nil {
			return 0, err
		}
		if err = settlementRepo.Update(ctx, record); err != nil {
			return 0, err
		}
		advanced++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return advanced, nil
}
