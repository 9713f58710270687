package engine

import (
	"repricer/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Apply computes the would-be new price for a product under a rule's action,
// at full precision. Callers that persist must round to 2dp themselves; the
// simulator aggregates the unrounded value for accuracy.
//
// There is no floor clamp: a decrease of 100% or more drives the price to
// zero or below.
func Apply(p *model.Product, r *model.PricingRule) decimal.Decimal {
	pct := r.Value.Div(hundred)

	switch r.Action {
	case model.ActionDecreasePct:
		return p.Price.Mul(decimal.NewFromInt(1).Sub(pct))
	case model.ActionIncreasePct:
		return p.Price.Mul(decimal.NewFromInt(1).Add(pct))
	}

	// Unknown action: leave the price as-is.
	return p.Price
}
