package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// All writes go through the command handlers' unit of work so that each
// mutation is one atomic read-modify-write keyed by parcel id.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate,
	// including its packaging lines.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	// Returns the complete parcel with its packaging lines.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetAllInStage retrieves all parcels of a pipeline variant currently
	// in the given stage. Used by the packaging queue and kanban feeds.
	GetAllInStage(ctx context.Context, variant pipeline.Variant, stage pipeline.Stage) ([]*parcel.Parcel, error)

	// GetAllInStageByProduct retrieves the variant's parcels in the given
	// stage carrying the product. Used by the bulk-prepare workflow.
	GetAllInStageByProduct(
		ctx context.Context,
		variant pipeline.Variant,
		stage pipeline.Stage,
		productRef string,
	) ([]*parcel.Parcel, error)
}
