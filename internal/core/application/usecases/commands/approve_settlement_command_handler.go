package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// RejectedApproval reports one record that could not be approved and why.
type RejectedApproval struct {
	RecordID kernel.UUID
	Err      error
}

// ApproveSettlementResult splits an approval batch into applied and rejected
// records.
type ApproveSettlementResult struct {
	Approved []kernel.UUID
	Rejected []RejectedApproval
}

// ApproveSettlementCommandHandler handles final cash-desk approval.
// Approval is per-record: a record that is missing or not pending approval is
// rejected without blocking the rest of the batch. Concurrent approvals of
// the same record are serialized by the transaction, so the second attempt
// sees a settled record and lands in the rejected list.
type ApproveSettlementCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewApproveSettlementCommandHandler creates a handler for cash-desk
// approvals.
func NewApproveSettlementCommandHandler(uowFactory SettlementUoWFactory) ApproveSettlementCommandHandler {
	return ApproveSettlementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle approves each record in the batch, stamping the approval time.
func (h *ApproveSettlementCommandHandler) Handle(
	ctx context.Context, cmd ApproveSettlementCommand,
) (ApproveSettlementResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApproveSettlementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApproveSettlementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settlementRepo := uow.SettlementRepository()
	approvedAt := time.Now().UTC()
	result := ApproveSettlementResult{}

	for _, recordID := range cmd.RecordIDs() {
		record, err := settlementRepo.Get(ctx, recordID)
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedApproval{RecordID: recordID, Err: err})
			continue
		}

		if err = record.Approve(approvedAt); err != nil {
			result.Rejected = append(result.Rejected, RejectedApproval{RecordID: recordID, Err: err})
			continue
		}

		if err = settlementRepo.Update(ctx, record); err != nil {
			return ApproveSettlementResult{}, err
		}
		result.Approved = append(result.Approved, recordID)
	}

	if err := uow.Commit(ctx); err != nil {
		return ApproveSettlementResult{}, err
	}

	return result, nil
}
