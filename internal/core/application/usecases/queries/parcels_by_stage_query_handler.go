package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParcelsByStageQueryHandler reads kanban columns from the database.
type ParcelsByStageQueryHandler struct {
	db *gorm.DB
}

// NewParcelsByStageQueryHandler creates a handler for kanban column reads.
func NewParcelsByStageQueryHandler(db *gorm.DB) ParcelsByStageQueryHandler {
	return ParcelsByStageQueryHandler{db: db}
}

// Handle returns the variant's parcels in the requested stage, oldest first.
func (h ParcelsByStageQueryHandler) Handle(
	ctx context.Context,
	query ParcelsByStageQuery,
) ([]ParcelsByStageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stageName, err := pipeline.NameFor(query.Variant(), query.Stage())
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_name,
			phone,
			city,
			district,
			product_ref,
			sku,
			unit_count,
			price,
			comment,
			employee_id,
			reminder_at,
			created_at
		FROM parcels
		WHERE variant = ? AND stage = ?
		ORDER BY created_at
	`, int(query.Variant()), int(query.Stage())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]ParcelsByStageQueryResponse, 0)

	for rows.Next() {
		var resp ParcelsByStageQueryResponse
		var id uuid.UUID
		var employeeID *uuid.UUID
		var price decimal.Decimal
		var reminderAt *time.Time

		err = rows.Scan(
			&id,
			&resp.ClientName,
			&resp.Phone,
			&resp.City,
			&resp.District,
			&resp.ProductRef,
			&resp.SKU,
			&resp.UnitCount,
			&price,
			&resp.Comment,
			&employeeID,
			&reminderAt,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID

		if employeeID != nil {
			eID, eErr := kernel.UUIDFromBytes((*employeeID)[:])
			if eErr != nil {
				return nil, eErr
			}
			resp.EmployeeID = &eID
		}

		money, moneyErr := kernel.MoneyFromDecimal(price)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Price = money
		resp.ReminderAt = reminderAt
		resp.StageName = stageName

		parcels = append(parcels, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
