// Package settlementrepo provides data transfer objects and mapping functions
// for settlement record persistence. One row exists per delivered,
// cash-collected parcel; the unique index on parcel_id backs the idempotent
// record creation on delivery.
package settlementrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordDTO represents the database structure for settlement records.
type RecordDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	DriverID      uuid.UUID       `gorm:"type:uuid;index:idx_settlement_driver_status"`
	CashCollected decimal.Decimal `gorm:"type:decimal(12,2)"`
	Commission    decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status        int             `gorm:"index:idx_settlement_driver_status"`
	RequestedAt   *time.Time
	ApprovedAt    *time.Time
	CreatedAt     time.Time
}

// TableName specifies the database table name for settlement records.
func (RecordDTO) TableName() string {
	return "settlement_records"
}

// fromDomain converts a settlement record to its database representation.
func fromDomain(record *settlement.Record) RecordDTO {
	return RecordDTO{
		ID:            record.ID().Bytes(),
		ParcelID:      record.ParcelID().Bytes(),
		DriverID:      record.DriverID().Bytes(),
		CashCollected: record.CashCollected().Decimal(),
		Commission:    record.Commission().Decimal(),
		Status:        int(record.Status()),
		RequestedAt:   record.RequestedAt(),
		ApprovedAt:    record.ApprovedAt(),
		CreatedAt:     record.CreatedAt(),
	}
}

// toDomain converts a database DTO to a settlement record aggregate.
func toDomain(dto RecordDTO) (*settlement.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	cash, err := kernel.MoneyFromDecimal(dto.CashCollected)
	if err != nil {
		return nil, err
	}

	commission, err := kernel.MoneyFromDecimal(dto.Commission)
	if err != nil {
		return nil, err
	}

	return settlement.RestoreRecord(
		id,
		parcelID,
		driverID,
		cash,
		commission,
		settlement.Status(dto.Status),
		dto.RequestedAt,
		dto.ApprovedAt,
		dto.CreatedAt,
	)
}
