package engine_test

import (
	"testing"

	"repricer/internal/engine"
	"repricer/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func product(category string, stock int) *model.Product {
	return &model.Product{
		Category: category,
		Price:    decimal.NewFromInt(100),
		Stock:    stock,
	}
}

func stockRule(category string, threshold int64) *model.PricingRule {
	return &model.PricingRule{
		Name:           "overstock markdown",
		TargetCategory: category,
		Condition:      model.ConditionStockAbove,
		Threshold:      decimal.NewFromInt(threshold),
		Action:         model.ActionDecreasePct,
		Value:          decimal.NewFromInt(10),
		IsActive:       true,
	}
}

func TestMatchesCategoryGate(t *testing.T) {
	rule := stockRule("Electronics", 5)

	// Category mismatch never matches, regardless of condition truth.
	assert.False(t, engine.Matches(product("Beverages", 100), rule))

	// Exact match is case-sensitive.
	assert.False(t, engine.Matches(product("electronics", 100), rule))
	assert.True(t, engine.Matches(product("Electronics", 100), rule))
}

func TestMatchesStockAbove(t *testing.T) {
	rule := stockRule("Electronics", 10)

	cases := []struct {
		stock int
		want  bool
	}{
		{stock: 0, want: false},
		{stock: 10, want: false}, // strictly greater, not >=
		{stock: 11, want: true},
		{stock: 500, want: true},
	}
	for _, tc := range cases {
		got := engine.Matches(product("Electronics", tc.stock), rule)
		assert.Equal(t, tc.want, got, "stock=%d", tc.stock)
	}
}

func TestMatchesExpiryIsThresholdOnly(t *testing.T) {
	rule := &model.PricingRule{
		TargetCategory: "Fresh Produce",
		Condition:      model.ConditionExpiryWithin,
		Action:         model.ActionDecreasePct,
		Value:          decimal.NewFromInt(20),
	}

	// The product's actual expiry date plays no part in the decision:
	// only the rule threshold is consulted.
	p := product("Fresh Produce", 3)

	rule.Threshold = decimal.NewFromInt(10)
	assert.False(t, engine.Matches(p, rule))

	rule.Threshold = decimal.NewFromInt(11)
	assert.True(t, engine.Matches(p, rule))

	rule.Threshold = decimal.NewFromInt(30)
	assert.True(t, engine.Matches(p, rule))
}

func TestMatchesSlowSalesNeverMatches(t *testing.T) {
	rule := &model.PricingRule{
		TargetCategory: "Electronics",
		Condition:      model.ConditionSlowSales,
		Threshold:      decimal.NewFromInt(5),
		Action:         model.ActionDecreasePct,
		Value:          decimal.NewFromInt(10),
	}

	// No evaluator branch exists — must be a deterministic no-match so batch
	// runs complete instead of matching everything.
	assert.False(t, engine.Matches(product("Electronics", 0), rule))
	assert.False(t, engine.Matches(product("Electronics", 1000), rule))
}

func TestMatchesUnknownConditionNoMatch(t *testing.T) {
	rule := &model.PricingRule{
		TargetCategory: "Electronics",
		Condition:      model.Condition("Margin < X"),
		Threshold:      decimal.NewFromInt(5),
	}
	assert.False(t, engine.Matches(product("Electronics", 50), rule))
}
