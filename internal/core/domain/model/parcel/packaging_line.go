package parcel

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// PackagingLine is one per-unit scan-tracking record on a parcel.
// Lines are materialized when the parcel enters the labeling stage and every
// line must be scan-confirmed before the parcel may be dispatched.
//
// A line is owned by its parcel aggregate: it is only created through
// Parcel.BeginPackaging and only marked scanned through Parcel.ScanLine.
type PackagingLine struct {
	parcelID   kernel.UUID
	productRef string
	sku        string
	scanned    bool
}

// newPackagingLine creates an unscanned line for a parcel's product.
func newPackagingLine(parcelID kernel.UUID, productRef, sku string) (*PackagingLine, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}
	if productRef == "" {
		return nil, errs.NewValueIsRequiredError("productRef")
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	return &PackagingLine{
		parcelID:   parcelID,
		productRef: productRef,
		sku:        sku,
	}, nil
}

// RestorePackagingLine reconstructs a line from persistence.
func RestorePackagingLine(parcelID kernel.UUID, productRef, sku string, scanned bool) (*PackagingLine, error) {
	line, err := newPackagingLine(parcelID, productRef, sku)
	if err != nil {
		return nil, err
	}
	line.scanned = scanned
	return line, nil
}

// ParcelID returns the owning parcel's identifier.
func (l *PackagingLine) ParcelID() kernel.UUID {
	return l.parcelID
}

// ProductRef returns the product reference the line belongs to.
func (l *PackagingLine) ProductRef() string {
	return l.productRef
}

// SKU returns the stock-keeping unit the operator must scan.
func (l *PackagingLine) SKU() string {
	return l.sku
}

// Scanned reports whether the line has been scan-confirmed.
func (l *PackagingLine) Scanned() bool {
	return l.scanned
}
