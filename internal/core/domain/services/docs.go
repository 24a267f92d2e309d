// Package services provides domain services that orchestrate business rules
// spanning multiple aggregates of the fulfillment engine.
//
// The package includes:
//   - CommissionPolicy: resolves the configured per-order commission rate for
//     a pipeline variant, with a default fallback rate.
//   - SettlementCalculator: folds a driver's settlement records into the
//     reconciled totals used for vouchers and outstanding-balance views.
//
// Domain services hold no mutable state; all persistence goes through the
// command handlers and their unit of work.
package services
