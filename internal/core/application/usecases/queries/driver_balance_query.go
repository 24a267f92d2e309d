package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDriverBalanceQueryIsNotConstructed = errors.New(
		"DriverBalanceQuery must be created via NewDriverBalanceQuery constructor",
	)
)

// DriverBalanceQuery computes what a driver owes across the given settlement
// statuses. The cashier's outstanding view asks for InTransit and ToSettle;
// the audit view asks for Settled.
type DriverBalanceQuery struct {
	driverID kernel.UUID
	statuses []settlement.Status

	guard guard.ConstructorGuard
}

// NewDriverBalanceQuery creates a balance query over the driver's records in
// any of the given statuses. At least one status is required.
func NewDriverBalanceQuery(
	driverID kernel.UUID, statuses []settlement.Status,
) (DriverBalanceQuery, error) {
	if err := driverID.Validate(); err != nil {
		return DriverBalanceQuery{}, err
	}
	if len(statuses) == 0 {
		return DriverBalanceQuery{}, errs.NewValueIsRequiredError("statuses")
	}
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return DriverBalanceQuery{}, err
		}
	}

	return DriverBalanceQuery{
		driverID: driverID,
		statuses: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DriverBalanceQuery) Validate() error {
	return q.guard.Validate(ErrDriverBalanceQueryIsNotConstructed)
}

// DriverID returns the driver whose balance is computed.
func (q DriverBalanceQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Statuses returns the settlement statuses included in the balance.
func (q DriverBalanceQuery) Statuses() []settlement.Status {
	return q.statuses
}

// DriverBalanceQueryResponse carries the driver's aggregated position.
type DriverBalanceQueryResponse struct {
	DriverID        kernel.UUID
	CashTotal       kernel.Money
	CommissionTotal kernel.Money
	RecordCount     int
}

// Net returns the amount the driver actually hands over.
func (r DriverBalanceQueryResponse) Net() kernel.Money {
	return r.CashTotal.Sub(r.CommissionTotal)
}
