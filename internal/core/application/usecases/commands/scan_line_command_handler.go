package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/parcel"
)

// ScanLineResult is the packaging station's feedback for one scan.
type ScanLineResult struct {
	Result parcel.ScanResult
	// ReadyForDispatch is true once every line of the parcel is scanned.
	ReadyForDispatch bool
	Parcel           *parcel.Parcel
}

// ScanLineCommandHandler handles barcode scans during packaging.
// A matched scan is persisted; a mismatch leaves the parcel untouched and is
// reported back without an error, since wrong scans are a normal part of the
// packaging workflow.
type ScanLineCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewScanLineCommandHandler creates a handler for packaging scans.
func NewScanLineCommandHandler(uowFactory ParcelUoWFactory) ScanLineCommandHandler {
	return ScanLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the scan to the parcel's packaging lines.
func (h *ScanLineCommandHandler) Handle(
	ctx context.Context, cmd ScanLineCommand,
) (ScanLineResult, error) {
	if err := cmd.Validate(); err != nil {
		return ScanLineResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ScanLineResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return ScanLineResult{}, err
	}

	scanResult := p.ScanLine(cmd.SKU())
	if scanResult == parcel.ScanMatched {
		if err = parcelRepo.Update(ctx, p); err != nil {
			return ScanLineResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return ScanLineResult{}, err
		}
	}

	return ScanLineResult{
		Result:           scanResult,
		ReadyForDispatch: p.ReadyForDispatch(),
		Parcel:           p,
	}, nil
}
