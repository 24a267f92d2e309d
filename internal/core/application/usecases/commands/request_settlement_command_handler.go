package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// SettlementVoucher is the printable summary handed to the cashier: what the
// driver owes and which records the request covers.
type SettlementVoucher struct {
	DriverID    kernel.UUID
	RequestedAt time.Time
	RecordIDs   []kernel.UUID
	Totals      services.SettlementTotals
}

// RequestSettlementCommandHandler handles driver settlement requests.
// Settlement requests are all-or-nothing: every ToSettle record of the driver
// moves to PendingApproval in one transaction, so the voucher's totals always
// match what was actually advanced.
//
// Example:
//
//	handler := NewRequestSettlementCommandHandler(uowFactory, calculator)
//	cmd, _ := NewRequestSettlementCommand(driverID)
//
//	voucher, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNothingToSettle) {
//	    // driver has no pending cash
//	}
type RequestSettlementCommandHandler struct {
	uowFactory SettlementUoWFactory
	calculator services.SettlementCalculator
}

// NewRequestSettlementCommandHandler creates a handler for settlement
// requests.
func NewRequestSettlementCommandHandler(
	uowFactory SettlementUoWFactory,
	calculator services.SettlementCalculator,
) RequestSettlementCommandHandler {
	return RequestSettlementCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle moves the driver's ToSettle records to PendingApproval and returns
// the voucher. Fails with ErrNothingToSettle when the driver has no records
// awaiting settlement.
func (h *RequestSettlementCommandHandler) Handle(
	ctx context.Context, cmd RequestSettlementCommand,
) (SettlementVoucher, error) {
	if err := cmd.Validate(); err != nil {
		return SettlementVoucher{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SettlementVoucher{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settlementRepo := uow.SettlementRepository()
	records, err := settlementRepo.GetAllByDriverInStatus(ctx, cmd.DriverID(), settlement.ToSettle)
	if err != nil {
		return SettlementVoucher{}, err
	}
	if len(records) == 0 {
		return SettlementVoucher{}, errs.NewNothingToSettleError(cmd.DriverID().String())
	}

	requestedAt := time.Now().UTC()
	recordIDs := make([]kernel.UUID, 0, len(records))

	for _, record := range records {
		if err = record.RequestApproval(requestedAt); err != nil {
			return SettlementVoucher{}, err
		}
		if err = settlementRepo.Update(ctx, record); err != nil {
			return SettlementVoucher{}, err
		}
		recordIDs = append(recordIDs, record.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return SettlementVoucher{}, err
	}

	return SettlementVoucher{
		DriverID:    cmd.DriverID(),
		RequestedAt: requestedAt,
		RecordIDs:   recordIDs,
		Totals:      h.calculator.Totals(records),
	}, nil
}
