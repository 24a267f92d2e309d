package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
)

// CommissionPolicy is a domain service that resolves the driver's per-order
// commission for a delivered parcel. The rate is configuration: each pipeline
// variant may carry its own flat per-order rate, and a default rate applies to
// any variant without one.
//
// The commission is computed exactly once, when the settlement record is
// created, and snapshotted on the record; a later rate change never rewrites
// an existing record.
type CommissionPolicy struct {
	defaultRate kernel.Money
	perVariant  map[pipeline.Variant]kernel.Money
}

// NewCommissionPolicy creates a policy with the default rate and optional
// per-variant overrides.
func NewCommissionPolicy(defaultRate kernel.Money, perVariant map[pipeline.Variant]kernel.Money) CommissionPolicy {
	rates := make(map[pipeline.Variant]kernel.Money, len(perVariant))
	for v, rate := range perVariant {
		rates[v] = rate
	}

	return CommissionPolicy{
		defaultRate: defaultRate,
		perVariant:  rates,
	}
}

// RateFor returns the per-order commission for the variant, falling back to
// the default rate when no variant-specific rate is configured.
func (p CommissionPolicy) RateFor(variant pipeline.Variant) kernel.Money {
	if rate, ok := p.perVariant[variant]; ok {
		return rate
	}
	return p.defaultRate
}
