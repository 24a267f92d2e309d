// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, converting between domain entities and their relational
// representation, packaging lines included.
package parcelrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. Variant and stage share a composite index because every queue
// and kanban read filters on both.
type ParcelDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Variant    int       `gorm:"index:idx_parcels_variant_stage"`
	Stage      int       `gorm:"index:idx_parcels_variant_stage"`
	ClientName string
	Phone      string
	City       string
	District   string
	ProductRef string `gorm:"index"`
	SKU        string
	UnitCount  int
	Price      decimal.Decimal `gorm:"type:decimal(12,2)"`
	Comment    string
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`
	ReminderAt *time.Time `gorm:"index"`
	CreatedAt  time.Time

	Lines []PackagingLineDTO `gorm:"foreignKey:ParcelID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// PackagingLineDTO represents one scan-tracking row owned by a parcel.
// The surrogate key exists only for the database; the domain identifies lines
// by position within their parcel.
type PackagingLineDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	ProductRef string
	SKU        string
	Scanned    bool
}

// TableName specifies the database table name for packaging lines.
func (PackagingLineDTO) TableName() string {
	return "packaging_lines"
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	var employeeID *uuid.UUID
	if id := p.Employee(); id != nil {
		raw := id.Bytes()
		employeeID = &raw
	}

	lines := make([]PackagingLineDTO, 0, len(p.PackagingLines()))
	for _, line := range p.PackagingLines() {
		lines = append(lines, PackagingLineDTO{
			ParcelID:   line.ParcelID().Bytes(),
			ProductRef: line.ProductRef(),
			SKU:        line.SKU(),
			Scanned:    line.Scanned(),
		})
	}

	return ParcelDTO{
		ID:         p.ID().Bytes(),
		Variant:    int(p.Variant()),
		Stage:      int(p.Stage()),
		ClientName: p.ClientName(),
		Phone:      p.Phone(),
		City:       p.City(),
		District:   p.District(),
		ProductRef: p.ProductRef(),
		SKU:        p.SKU(),
		UnitCount:  p.UnitCount(),
		Price:      p.Price().Decimal(),
		Comment:    p.Comment(),
		EmployeeID: employeeID,
		ReminderAt: p.ReminderAt(),
		CreatedAt:  p.CreatedAt(),
		Lines:      lines,
	}
}

// toDomain converts a database DTO to a parcel aggregate, reconstructing the
// packaging lines alongside it.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var employeeID *kernel.UUID
	if dto.EmployeeID != nil {
		eID, employeeErr := kernel.UUIDFromBytes((*dto.EmployeeID)[:])
		if employeeErr != nil {
			return nil, employeeErr
		}
		employeeID = &eID
	}

	price, err := kernel.MoneyFromDecimal(dto.Price)
	if err != nil {
		return nil, err
	}

	lines := make([]*parcel.PackagingLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := parcel.RestorePackagingLine(id, lineDTO.ProductRef, lineDTO.SKU, lineDTO.Scanned)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	draft := parcel.Draft{
		ClientName: dto.ClientName,
		Phone:      dto.Phone,
		City:       dto.City,
		District:   dto.District,
		ProductRef: dto.ProductRef,
		SKU:        dto.SKU,
		UnitCount:  dto.UnitCount,
		Price:      price,
		Comment:    dto.Comment,
	}

	return parcel.RestoreParcel(
		id,
		pipeline.Variant(dto.Variant),
		pipeline.Stage(dto.Stage),
		draft,
		employeeID,
		dto.ReminderAt,
		dto.CreatedAt,
		lines,
	)
}
