package engine_test

import (
	"testing"

	"repricer/internal/engine"
	"repricer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogProduct(category string, price float64, stock int, velocity model.SalesVelocity) model.Product {
	return model.Product{
		ID:            uuid.New(),
		Category:      category,
		Price:         decimal.NewFromFloat(price),
		Stock:         stock,
		SalesVelocity: velocity,
	}
}

func TestSimulateScenario(t *testing.T) {
	// Catalog: one Electronics product at 1000 with stock 50.
	// Rule: Stock > 5 → Increase Price 10%.
	products := []model.Product{
		catalogProduct("Electronics", 1000, 50, model.VelocityHigh),
	}
	rules := []model.PricingRule{
		{
			TargetCategory: "Electronics",
			Condition:      model.ConditionStockAbove,
			Threshold:      decimal.NewFromInt(5),
			Action:         model.ActionIncreasePct,
			Value:          decimal.NewFromInt(10),
			IsActive:       true,
		},
	}

	res := engine.Simulate(rules, products)

	require.Equal(t, 1, res.ImpactedCount)

	// (1100 - 1000) * 20 units for the High tier
	assert.True(t, res.RevenueDelta.Equal(decimal.NewFromInt(2000)), "revenue delta %s", res.RevenueDelta)
	// Cost cancels out of the margin difference, so it equals the revenue delta.
	assert.True(t, res.MarginDelta.Equal(decimal.NewFromInt(2000)), "margin delta %s", res.MarginDelta)
	assert.True(t, res.RevenueDelta.IsPositive())
}

func TestSimulateVelocityTiers(t *testing.T) {
	rule := model.PricingRule{
		TargetCategory: "Snacks",
		Condition:      model.ConditionStockAbove,
		Threshold:      decimal.NewFromInt(0),
		Action:         model.ActionIncreasePct,
		Value:          decimal.NewFromInt(10),
		IsActive:       true,
	}

	cases := []struct {
		velocity model.SalesVelocity
		want     int64 // (110-100) * units
	}{
		{velocity: model.VelocityHigh, want: 200},
		{velocity: model.VelocityMedium, want: 100},
		{velocity: model.VelocityLow, want: 20},
		{velocity: model.SalesVelocity(""), want: 20}, // missing tier degrades to Low
	}

	for _, tc := range cases {
		products := []model.Product{catalogProduct("Snacks", 100, 10, tc.velocity)}
		res := engine.Simulate([]model.PricingRule{rule}, products)
		assert.True(t, res.RevenueDelta.Equal(decimal.NewFromInt(tc.want)),
			"velocity=%q got %s want %d", tc.velocity, res.RevenueDelta, tc.want)
	}
}

func TestSimulateCostFallback(t *testing.T) {
	// CostPrice absent → cost = 0.7×price, applied at read time only.
	p := catalogProduct("Snacks", 100, 10, model.VelocityLow)
	require.Nil(t, p.CostPrice)
	assert.True(t, p.EffectiveCost().Equal(decimal.NewFromInt(70)))

	cost := decimal.NewFromInt(40)
	p.CostPrice = &cost
	assert.True(t, p.EffectiveCost().Equal(cost))
}

func TestSimulateIsPure(t *testing.T) {
	products := []model.Product{
		catalogProduct("Electronics", 999.99, 50, model.VelocityHigh),
		catalogProduct("Electronics", 49.50, 3, model.VelocityMedium),
		catalogProduct("Beverages", 2.99, 200, model.VelocityLow),
	}
	rules := []model.PricingRule{
		{
			TargetCategory: "Electronics",
			Condition:      model.ConditionStockAbove,
			Threshold:      decimal.NewFromInt(5),
			Action:         model.ActionDecreasePct,
			Value:          decimal.NewFromInt(15),
			IsActive:       true,
		},
		{
			TargetCategory: "Beverages",
			Condition:      model.ConditionStockAbove,
			Threshold:      decimal.NewFromInt(100),
			Action:         model.ActionIncreasePct,
			Value:          decimal.NewFromInt(5),
			IsActive:       true,
		},
	}

	snapshot := make([]model.Product, len(products))
	copy(snapshot, products)

	first := engine.Simulate(rules, products)
	second := engine.Simulate(rules, products)

	// Identical inputs produce identical results.
	assert.True(t, first.RevenueDelta.Equal(second.RevenueDelta))
	assert.True(t, first.MarginDelta.Equal(second.MarginDelta))
	assert.Equal(t, first.ImpactedCount, second.ImpactedCount)

	// And nothing in the snapshot was mutated.
	for i := range products {
		assert.True(t, products[i].Price.Equal(snapshot[i].Price))
	}
}

func TestSimulateNoMatchesIsZero(t *testing.T) {
	products := []model.Product{catalogProduct("Beverages", 3, 2, model.VelocityLow)}
	rules := []model.PricingRule{
		{
			TargetCategory: "Electronics", // no category overlap
			Condition:      model.ConditionStockAbove,
			Threshold:      decimal.NewFromInt(0),
			Action:         model.ActionDecreasePct,
			Value:          decimal.NewFromInt(10),
			IsActive:       true,
		},
	}

	res := engine.Simulate(rules, products)
	assert.Equal(t, 0, res.ImpactedCount)
	assert.True(t, res.RevenueDelta.IsZero())
	assert.True(t, res.MarginDelta.IsZero())
}

func TestScaledForDisplay(t *testing.T) {
	res := engine.SimulationResult{
		RevenueDelta: decimal.NewFromInt(2440),
		MarginDelta:  decimal.NewFromInt(-1260),
	}
	rev, margin := res.ScaledForDisplay()
	assert.Equal(t, "2.4", rev.String())
	assert.Equal(t, "-1.3", margin.String())
}
