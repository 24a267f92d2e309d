package settlement

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not created through
	// the NewRecord or RestoreRecord factory methods.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")
)

// Record tracks cash reconciliation for one delivered parcel, independently of
// the parcel's lifecycle stage. It is created the moment a parcel reaches the
// delivered stage with cash collected, and it outlives the parcel's logical
// closure, forming the audit trail for cash handled by each driver.
//
// Record follows these invariants:
//   - cashCollected is an immutable snapshot of the parcel price at creation.
//   - commission is computed once at creation and never recalculated.
//   - status only moves forward (see Status).
//   - Can only be created through NewRecord or RestoreRecord.
type Record struct {
	id       kernel.UUID
	parcelID kernel.UUID
	driverID kernel.UUID

	cashCollected kernel.Money
	commission    kernel.Money

	status      Status
	requestedAt *time.Time
	approvedAt  *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewRecord creates a settlement record in InTransit for a delivered,
// cash-collected parcel. cashCollected must be nonzero; a cashless parcel
// never enters settlement tracking.
func NewRecord(
	id kernel.UUID,
	parcelID kernel.UUID,
	driverID kernel.UUID,
	cashCollected kernel.Money,
	commission kernel.Money,
	now time.Time,
) (*Record, error) {
	r := &Record{
		status:        InTransit,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setParcelID(parcelID),
		r.setDriverID(driverID),
		r.setCashCollected(cashCollected),
	); err != nil {
		return nil, err
	}

	r.commission = commission
	return r, nil
}

// RestoreRecord reconstructs a record from persistence.
func RestoreRecord(
	id kernel.UUID,
	parcelID kernel.UUID,
	driverID kernel.UUID,
	cashCollected kernel.Money,
	commission kernel.Money,
	status Status,
	requestedAt *time.Time,
	approvedAt *time.Time,
	createdAt time.Time,
) (*Record, error) {
	r, err := NewRecord(id, parcelID, driverID, cashCollected, commission, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	r.status = status
	r.requestedAt = requestedAt
	r.approvedAt = approvedAt
	return r, nil
}

// Validate ensures the Record instance was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// ParcelID returns the delivered parcel this record reconciles.
func (r *Record) ParcelID() kernel.UUID {
	return r.parcelID
}

// DriverID returns the driver holding the cash.
func (r *Record) DriverID() kernel.UUID {
	return r.driverID
}

// CashCollected returns the immutable cash snapshot taken at creation.
func (r *Record) CashCollected() kernel.Money {
	return r.cashCollected
}

// Commission returns the driver's commission, computed once at creation.
func (r *Record) Commission() kernel.Money {
	return r.commission
}

// Net returns cashCollected minus commission: the amount this record
// contributes to what the driver owes the business.
func (r *Record) Net() kernel.Money {
	return r.cashCollected.Sub(r.commission)
}

// Status returns the record's current settlement status.
func (r *Record) Status() Status {
	return r.status
}

// RequestedAt returns when settlement was requested, or nil.
func (r *Record) RequestedAt() *time.Time {
	return r.requestedAt
}

// ApprovedAt returns when the settlement was approved, or nil.
func (r *Record) ApprovedAt() *time.Time {
	return r.approvedAt
}

// CreatedAt returns when the record was created.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

// MarkToSettle confirms the delivered signal and advances InTransit to ToSettle.
func (r *Record) MarkToSettle() error {
	newStatus, err := r.status.MarkToSettle()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// RequestApproval advances ToSettle to PendingApproval and stamps requestedAt.
func (r *Record) RequestApproval(now time.Time) error {
	newStatus, err := r.status.RequestApproval()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.requestedAt = &now
	return nil
}

// Approve advances PendingApproval to Settled and stamps approvedAt.
// Returns a NotPending error when the record is in any other status, so a
// batch approval can report the id as rejected while applying the rest.
func (r *Record) Approve(now time.Time) error {
	if _, err := r.status.Approve(); err != nil {
		return errs.NewNotPendingError(r.id.String(), r.status.String())
	}

	r.status = Settled
	r.approvedAt = &now
	return nil
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	r.parcelID = parcelID
	return nil
}

func (r *Record) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	r.driverID = driverID
	return nil
}

func (r *Record) setCashCollected(cash kernel.Money) error {
	if cash.IsZero() {
		return errs.NewValueIsRequiredError("cashCollected")
	}
	r.cashCollected = cash
	return nil
}
