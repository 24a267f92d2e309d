package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
)

// SettlementRepository defines the persistence contract for settlement
// records. Records are created once per delivered, cash-collected parcel and
// only mutated by the settlement command handlers.
type SettlementRepository interface {
	// Add persists a new settlement record.
	Add(ctx context.Context, aggregate *settlement.Record) error

	// Update persists changes to an existing settlement record.
	Update(ctx context.Context, aggregate *settlement.Record) error

	// Get retrieves a settlement record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*settlement.Record, error)

	// GetByParcelID retrieves the record created for a parcel, if any.
	// Backs the idempotency check on delivery: at most one record exists
	// per parcel.
	GetByParcelID(ctx context.Context, parcelID kernel.UUID) (*settlement.Record, error)

	// GetAllByDriverInStatus retrieves a driver's records in the given status.
	GetAllByDriverInStatus(
		ctx context.Context,
		driverID kernel.UUID,
		status settlement.Status,
	) ([]*settlement.Record, error)
}
