package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackagingGroupsQueryHandler reads the packaging queue from the database.
type PackagingGroupsQueryHandler struct {
	db *gorm.DB
}

// NewPackagingGroupsQueryHandler creates a handler for packaging queue reads.
func NewPackagingGroupsQueryHandler(db *gorm.DB) PackagingGroupsQueryHandler {
	return PackagingGroupsQueryHandler{db: db}
}

// Handle returns the variant's confirmed parcels grouped by product.
// Groups are ordered by product reference, parcels within a group by age.
func (h PackagingGroupsQueryHandler) Handle(
	ctx context.Context,
	query PackagingGroupsQuery,
) ([]PackagingGroupResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_ref,
			sku,
			unit_count
		FROM parcels
		WHERE variant = ? AND stage = ?
		ORDER BY product_ref, created_at
	`, int(query.Variant()), int(pipeline.Confirmed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]PackagingGroupResponse, 0)

	for rows.Next() {
		var id uuid.UUID
		var productRef, sku string
		var unitCount int

		if err = rows.Scan(&id, &productRef, &sku, &unitCount); err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		if len(groups) == 0 || groups[len(groups)-1].ProductRef != productRef {
			groups = append(groups, PackagingGroupResponse{
				ProductRef: productRef,
				SKU:        sku,
			})
		}

		last := &groups[len(groups)-1]
		last.TotalUnits += unitCount
		last.ParcelIDs = append(last.ParcelIDs, parcelID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}
