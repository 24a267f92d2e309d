package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrParcelsByStageQueryIsNotConstructed = errors.New(
		"ParcelsByStageQuery must be created via NewParcelsByStageQuery constructor",
	)
)

// ParcelsByStageQuery feeds one column of the kanban board: the variant's
// parcels currently sitting in a stage.
type ParcelsByStageQuery struct {
	variant pipeline.Variant
	stage   pipeline.Stage

	guard guard.ConstructorGuard
}

// NewParcelsByStageQuery creates a query for the variant's parcels in stage.
func NewParcelsByStageQuery(variant pipeline.Variant, stage pipeline.Stage) (ParcelsByStageQuery, error) {
	if err := errors.Join(variant.Validate(), stage.Validate()); err != nil {
		return ParcelsByStageQuery{}, err
	}

	return ParcelsByStageQuery{
		variant: variant,
		stage:   stage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ParcelsByStageQuery) Validate() error {
	return q.guard.Validate(ErrParcelsByStageQueryIsNotConstructed)
}

// Variant returns the pipeline being read.
func (q ParcelsByStageQuery) Variant() pipeline.Variant {
	return q.variant
}

// Stage returns the kanban column being read.
func (q ParcelsByStageQuery) Stage() pipeline.Stage {
	return q.stage
}

// ParcelsByStageQueryResponse represents one kanban card. StageName carries
// the variant-qualified display name, so regional parcels render with their
// own stage labels.
type ParcelsByStageQueryResponse struct {
	ID         kernel.UUID
	StageName  string
	ClientName string
	Phone      string
	City       string
	District   string
	ProductRef string
	SKU        string
	UnitCount  int
	Price      kernel.Money
	Comment    string
	EmployeeID *kernel.UUID
	ReminderAt *time.Time
	CreatedAt  time.Time
}
