package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParcelByIDQueryHandler reads one parcel and its packaging lines.
type ParcelByIDQueryHandler struct {
	db *gorm.DB
}

// NewParcelByIDQueryHandler creates a handler for the parcel detail view.
func NewParcelByIDQueryHandler(db *gorm.DB) ParcelByIDQueryHandler {
	return ParcelByIDQueryHandler{db: db}
}

// Handle returns the parcel view or ObjectNotFound when the id is unknown.
// ReadyForDispatch is derived here the same way the aggregate derives it:
// the parcel sits in the packaging stage and every line is scanned.
func (h ParcelByIDQueryHandler) Handle(
	ctx context.Context,
	query ParcelByIDQuery,
) (ParcelByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelByIDQueryResponse{}, err
	}

	var resp ParcelByIDQueryResponse
	var id uuid.UUID
	var variant, stage int
	var employeeID *uuid.UUID
	var price decimal.Decimal
	var reminderAt *time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			variant,
			stage,
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
		WHERE id = ?
	`, query.ParcelID().Bytes()).Row()

	err := row.Scan(
		&id,
		&variant,
		&stage,
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
		if errors.Is(err, sql.ErrNoRows) {
			return ParcelByIDQueryResponse{}, errs.NewObjectNotFoundError("parcel", query.ParcelID())
		}
		return ParcelByIDQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ParcelByIDQueryResponse{}, err
	}
	resp.ID = parcelID

	if employeeID != nil {
		eID, eErr := kernel.UUIDFromBytes((*employeeID)[:])
		if eErr != nil {
			return ParcelByIDQueryResponse{}, eErr
		}
		resp.EmployeeID = &eID
	}

	money, err := kernel.MoneyFromDecimal(price)
	if err != nil {
		return ParcelByIDQueryResponse{}, err
	}
	resp.Price = money
	resp.ReminderAt = reminderAt

	stageName, err := pipeline.NameFor(pipeline.Variant(variant), pipeline.Stage(stage))
	if err != nil {
		return ParcelByIDQueryResponse{}, err
	}
	resp.StageName = stageName

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_ref, sku, scanned
		FROM packaging_lines
		WHERE parcel_id = ?
		ORDER BY id
	`, query.ParcelID().Bytes()).Rows()
	if err != nil {
		return ParcelByIDQueryResponse{}, err
	}
	defer rows.Close()

	allScanned := true
	for rows.Next() {
		var line PackagingLineResponse
		if err = rows.Scan(&line.ProductRef, &line.SKU, &line.Scanned); err != nil {
			return ParcelByIDQueryResponse{}, err
		}
		if !line.Scanned {
			allScanned = false
		}
		resp.Lines = append(resp.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return ParcelByIDQueryResponse{}, err
	}

	resp.ReadyForDispatch = pipeline.Stage(stage) == pipeline.Packaging &&
		len(resp.Lines) > 0 && allScanned

	return resp, nil
}
