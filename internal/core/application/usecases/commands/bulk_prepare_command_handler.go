package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
)

// BulkPrepareItemResult reports the outcome for one parcel in a bulk
// preparation batch. Err is nil when the parcel entered packaging.
type BulkPrepareItemResult struct {
	ParcelID kernel.UUID
	Err      error
}

// BulkPrepareResult aggregates the outcome of a bulk preparation batch.
type BulkPrepareResult struct {
	Prepared int
	Results  []BulkPrepareItemResult
}

// BulkPrepareCommandHandler handles bulk preparation.
// The batch is a sequence of independent single-parcel transitions: each
// parcel gets its own transaction, so one failure never rolls back the rest.
//
// Example:
//
//	handler := NewBulkPrepareCommandHandler(uowFactory)
//	cmd, _ := NewBulkPrepareCommand(pipeline.Default, "thermo-mug-450")
//
//	result, err := handler.Handle(ctx, cmd)
//	log.Printf("prepared %d of %d", result.Prepared, len(result.Results))
type BulkPrepareCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewBulkPrepareCommandHandler creates a handler for bulk preparation.
func NewBulkPrepareCommandHandler(uowFactory ParcelUoWFactory) BulkPrepareCommandHandler {
	return BulkPrepareCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle starts packaging for every confirmed parcel of the product.
// The candidate list is taken from a snapshot read; each parcel is then
// re-read and transitioned in its own transaction.
func (h *BulkPrepareCommandHandler) Handle(
	ctx context.Context, cmd BulkPrepareCommand,
) (BulkPrepareResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkPrepareResult{}, err
	}

	candidates, err := h.uowFactory.Create().ParcelRepository().GetAllInStageByProduct(
		ctx, cmd.Variant(), pipeline.Confirmed, cmd.ProductRef(),
	)
	if err != nil {
		return BulkPrepareResult{}, err
	}

	result := BulkPrepareResult{
		Results: make([]BulkPrepareItemResult, 0, len(candidates)),
	}

	for _, candidate := range candidates {
		prepareErr := h.prepareOne(ctx, candidate.ID())
		if prepareErr == nil {
			result.Prepared++
		}

		result.Results = append(result.Results, BulkPrepareItemResult{
			ParcelID: candidate.ID(),
			Err:      prepareErr,
		})
	}

	return result, nil
}

func (h *BulkPrepareCommandHandler) prepareOne(ctx context.Context, parcelID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, parcelID)
	if err != nil {
		return err
	}

	if err = p.BeginPackaging(); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
