package engine

import (
	"repricer/internal/model"

	"github.com/shopspring/decimal"
)

// SimulationResult is the aggregate projection of running a set of rules
// against a catalog snapshot without mutating anything. RevenueDelta and
// MarginDelta carry the raw, unrounded monthly totals; display scaling
// (÷1000, one decimal) is a presentation concern handled by ScaledForDisplay.
type SimulationResult struct {
	RevenueDelta  decimal.Decimal
	MarginDelta   decimal.Decimal
	ImpactedCount int
}

var displayScale = decimal.NewFromInt(1000)

// ScaledForDisplay returns the deltas divided by 1000, rounded to one decimal,
// the way the dashboard presents them ("+2.4k / month").
func (s SimulationResult) ScaledForDisplay() (revenue, margin decimal.Decimal) {
	return s.RevenueDelta.Div(displayScale).Round(1),
		s.MarginDelta.Div(displayScale).Round(1)
}

// Simulate projects the monthly revenue and margin impact of running every
// given rule against every matching product. Matching uses the same category
// gate and condition evaluation as a live run; prices are computed at full
// precision and never written back.
//
// The monthly unit-sales proxy comes from the product's velocity tier
// (High→20, Medium→10, Low→2 — fixed constants, not historical data), and
// cost falls back to 0.7×price when CostPrice is absent. Missing or malformed
// fields degrade to those defaults rather than erroring, so simulation never
// fails on data shape.
//
// Simulate is pure: identical (rules, products) snapshots produce identical
// results, and no product or rule state is touched. Callers are expected to
// pass active rules only.
func Simulate(rules []model.PricingRule, products []model.Product) SimulationResult {
	var res SimulationResult
	res.RevenueDelta = decimal.Zero
	res.MarginDelta = decimal.Zero

	for i := range rules {
		rule := &rules[i]
		for j := range products {
			p := &products[j]
			if !Matches(p, rule) {
				continue
			}

			res.ImpactedCount++
			newPrice := Apply(p, rule)
			units := decimal.NewFromInt(p.EstimatedMonthlyUnits())

			// revenueDelta += (new - old) * units
			res.RevenueDelta = res.RevenueDelta.Add(newPrice.Sub(p.Price).Mul(units))

			// marginDelta += ((new - cost) - (old - cost)) * units
			cost := p.EffectiveCost()
			oldMargin := p.Price.Sub(cost)
			newMargin := newPrice.Sub(cost)
			res.MarginDelta = res.MarginDelta.Add(newMargin.Sub(oldMargin).Mul(units))
		}
	}

	return res
}
