// Package engine implements the merchandising pricing rule engine: condition
// matching, price derivation, charm-ending normalization, concurrent batch
// application, and the read-only financial impact simulation.
//
// Everything here operates on caller-supplied catalog snapshots. The engine
// holds no cache of its own, so two rules run back-to-back must each receive
// a fresh snapshot to observe the other's effects.
package engine

import (
	"repricer/internal/model"

	"github.com/shopspring/decimal"
)

// expiryThresholdFloor is the magic cutoff of the threshold-only expiry check.
var expiryThresholdFloor = decimal.NewFromInt(10)

// Matches reports whether a rule applies to a product. The category gate runs
// first: a product never matches unless its category equals the rule's target
// exactly (case-sensitive).
func Matches(p *model.Product, r *model.PricingRule) bool {
	if p.Category != r.TargetCategory {
		return false
	}

	switch r.Condition {
	case model.ConditionStockAbove:
		return decimal.NewFromInt(int64(p.Stock)).GreaterThan(r.Threshold)

	case model.ConditionExpiryWithin:
		// Threshold-only check: the product's actual expiry date is NOT read.
		// TODO: replace with a real date-diff against Product.ExpiresAt once
		// the intended formula is confirmed with the product owner — changing
		// it changes which products are selected.
		return r.Threshold.GreaterThan(expiryThresholdFloor)

	case model.ConditionSlowSales:
		// No evaluator branch exists for sales velocity thresholds yet.
		// Deterministic no-match keeps batch runs completing instead of
		// silently matching everything.
		return false
	}

	return false
}
