package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
)

// SettlementTotals is the aggregate a settlement voucher or balance view is
// rendered from. The same record set always reproduces the same totals,
// regardless of the order records were processed in.
type SettlementTotals struct {
	CashTotal       kernel.Money
	CommissionTotal kernel.Money
	RecordCount     int
}

// Net returns the amount owed to the business: Σ cashCollected − Σ commission.
func (t SettlementTotals) Net() kernel.Money {
	return t.CashTotal.Sub(t.CommissionTotal)
}

// SettlementCalculator is a domain service that folds a driver's settlement
// records into reconciled totals, optionally restricted to a status subset
// (only PendingApproval for a voucher, all non-Settled for an
// outstanding-balance view, and so on).
type SettlementCalculator struct{}

// NewSettlementCalculator creates a new SettlementCalculator instance.
func NewSettlementCalculator() SettlementCalculator {
	return SettlementCalculator{}
}

// Totals sums cash and commission over every record in the set.
func (c SettlementCalculator) Totals(records []*settlement.Record) SettlementTotals {
	totals := SettlementTotals{
		CashTotal:       kernel.ZeroMoney(),
		CommissionTotal: kernel.ZeroMoney(),
	}

	for _, r := range records {
		totals.CashTotal = totals.CashTotal.Add(r.CashCollected())
		totals.CommissionTotal = totals.CommissionTotal.Add(r.Commission())
		totals.RecordCount++
	}
	return totals
}

// TotalsInStatus sums only the records whose status is in the requested subset.
func (c SettlementCalculator) TotalsInStatus(
	records []*settlement.Record,
	statuses ...settlement.Status,
) SettlementTotals {
	wanted := make(map[settlement.Status]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	filtered := make([]*settlement.Record, 0, len(records))
	for _, r := range records {
		if wanted[r.Status()] {
			filtered = append(filtered, r)
		}
	}
	return c.Totals(filtered)
}
