package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPackagingGroupsQueryIsNotConstructed = errors.New(
		"PackagingGroupsQuery must be created via NewPackagingGroupsQuery constructor",
	)
)

// PackagingGroupsQuery retrieves the packaging queue for a pipeline: confirmed
// parcels grouped by product, so the crew can label one product run at a time.
//
// Example:
//
//	query, _ := NewPackagingGroupsQuery(pipeline.Default)
//	handler := NewPackagingGroupsQueryHandler(db)
//
//	groups, err := handler.Handle(ctx, query)
//	for _, g := range groups {
//	    fmt.Printf("%s: %d parcels, %d units\n", g.ProductRef, len(g.ParcelIDs), g.TotalUnits)
//	}
type PackagingGroupsQuery struct {
	variant pipeline.Variant

	guard guard.ConstructorGuard
}

// NewPackagingGroupsQuery creates a query for the variant's packaging queue.
func NewPackagingGroupsQuery(variant pipeline.Variant) (PackagingGroupsQuery, error) {
	if err := variant.Validate(); err != nil {
		return PackagingGroupsQuery{}, err
	}

	return PackagingGroupsQuery{
		variant: variant,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PackagingGroupsQuery) Validate() error {
	return q.guard.Validate(ErrPackagingGroupsQueryIsNotConstructed)
}

// Variant returns the pipeline the queue belongs to.
func (q PackagingGroupsQuery) Variant() pipeline.Variant {
	return q.variant
}

// PackagingGroupResponse represents one product run in the packaging queue.
type PackagingGroupResponse struct {
	ProductRef string
	SKU        string
	TotalUnits int
	ParcelIDs  []kernel.UUID
}
