package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DriverBalanceQueryHandler reads driver balances from the database.
type DriverBalanceQueryHandler struct {
	db *gorm.DB
}

// NewDriverBalanceQueryHandler creates a handler for driver balance reads.
func NewDriverBalanceQueryHandler(db *gorm.DB) DriverBalanceQueryHandler {
	return DriverBalanceQueryHandler{db: db}
}

// Handle sums the driver's cash and commission over the requested statuses.
// A driver with no matching records gets a zero balance, not an error.
func (h DriverBalanceQueryHandler) Handle(
	ctx context.Context,
	query DriverBalanceQuery,
) (DriverBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverBalanceQueryResponse{}, err
	}

	statuses := make([]int, 0, len(query.Statuses()))
	for _, status := range query.Statuses() {
		statuses = append(statuses, int(status))
	}

	var cashTotal, commissionTotal decimal.Decimal
	var recordCount int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(cash_collected), 0),
			COALESCE(SUM(commission), 0),
			COUNT(*)
		FROM settlement_records
		WHERE driver_id = ? AND status IN ?
	`, query.DriverID().Bytes(), statuses).Row()

	if err := row.Scan(&cashTotal, &commissionTotal, &recordCount); err != nil {
		return DriverBalanceQueryResponse{}, err
	}

	cash, err := kernel.MoneyFromDecimal(cashTotal)
	if err != nil {
		return DriverBalanceQueryResponse{}, err
	}

	commission, err := kernel.MoneyFromDecimal(commissionTotal)
	if err != nil {
		return DriverBalanceQueryResponse{}, err
	}

	return DriverBalanceQueryResponse{
		DriverID:        query.DriverID(),
		CashTotal:       cash,
		CommissionTotal: commission,
		RecordCount:     recordCount,
	}, nil
}
