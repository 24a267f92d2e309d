package settlementrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettlementRepository implements SettlementRepository using GORM.
type GormSettlementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSettlementRepository creates a new GORM settlement repository.
func NewGormSettlementRepository(db *gorm.DB, tracker aggregateTracker) *GormSettlementRepository {
	return &GormSettlementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new settlement record to the database.
func (r *GormSettlementRepository) Add(ctx context.Context, aggregate *settlement.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing settlement record to the database.
func (r *GormSettlementRepository) Update(ctx context.Context, aggregate *settlement.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("CreatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a settlement record by ID.
// The row is read with SELECT FOR UPDATE so that inside a transaction two
// approvals of the same record serialize: the second reads the committed
// Settled status and fails the status transition instead of overwriting.
func (r *GormSettlementRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlement record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByParcelID retrieves the record opened for a parcel, if any.
// Reads the row with SELECT FOR UPDATE, same as Get.
func (r *GormSettlementRepository) GetByParcelID(
	ctx context.Context, parcelID kernel.UUID,
) (*settlement.Record, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "parcel_id = ?", parcelID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlement record by parcel", parcelID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByDriverInStatus retrieves a driver's records in the given status.
// The rows are read with SELECT FOR UPDATE so that two concurrent batch
// moves over the same driver's records serialize rather than both advancing
// the same record.
func (r *GormSettlementRepository) GetAllByDriverInStatus(
	ctx context.Context, driverID kernel.UUID, status settlement.Status,
) ([]*settlement.Record, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at").
		Find(&dtos, "driver_id = ? AND status = ?", driverID.Bytes(), int(status)).Error; err != nil {
		return nil, err
	}

	records := make([]*settlement.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
