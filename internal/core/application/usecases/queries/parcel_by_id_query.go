package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrParcelByIDQueryIsNotConstructed = errors.New(
		"ParcelByIDQuery must be created via NewParcelByIDQuery constructor",
	)
)

// ParcelByIDQuery retrieves a single parcel with its packaging lines and the
// derived dispatch-readiness flag. Backs the parcel detail view and the
// readiness check the packaging UI runs before offering the dispatch action.
type ParcelByIDQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewParcelByIDQuery creates a query for one parcel.
func NewParcelByIDQuery(parcelID kernel.UUID) (ParcelByIDQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return ParcelByIDQuery{}, err
	}

	return ParcelByIDQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ParcelByIDQuery) Validate() error {
	return q.guard.Validate(ErrParcelByIDQueryIsNotConstructed)
}

// ParcelID returns the id of the requested parcel.
func (q ParcelByIDQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// PackagingLineResponse is one scan-tracking line of the parcel.
type PackagingLineResponse struct {
	ProductRef string
	SKU        string
	Scanned    bool
}

// ParcelByIDQueryResponse is the full parcel view.
type ParcelByIDQueryResponse struct {
	ID               kernel.UUID
	StageName        string
	ClientName       string
	Phone            string
	City             string
	District         string
	ProductRef       string
	SKU              string
	UnitCount        int
	Price            kernel.Money
	Comment          string
	EmployeeID       *kernel.UUID
	ReminderAt       *time.Time
	CreatedAt        time.Time
	Lines            []PackagingLineResponse
	ReadyForDispatch bool
}
