package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Condition selects the predicate a rule evaluates against each product.
// Typed constants (instead of free strings) keep the switch in the evaluator
// exhaustive: an unimplemented condition is a visible case, not a silent match.
type Condition string

const (
	ConditionStockAbove   Condition = "Stock > X"
	ConditionExpiryWithin Condition = "Expiry < X Days"
	// ConditionSlowSales is declared but has no evaluator branch yet; it
	// deterministically evaluates to no-match so batch runs still complete.
	ConditionSlowSales Condition = "Sales < X"
)

// Action selects the price transformation a matching rule applies.
type Action string

const (
	ActionDecreasePct Action = "Decrease Price %"
	ActionIncreasePct Action = "Increase Price %"
)

// PricingRule is a stored condition+action pair targeting one category.
// Rules carry no versioning or last-applied marker: re-running a rule
// re-applies its percentage against the product's CURRENT price, so repeated
// runs compound. That one-shot-trigger semantic is intentional.
type PricingRule struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	// TargetCategory must match Product.Category exactly (case-sensitive).
	TargetCategory string          `gorm:"not null;index"`
	Condition      Condition       `gorm:"not null"`
	Threshold      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Action         Action          `gorm:"not null"`
	// Value is the percentage magnitude for the action. It is not clamped:
	// a decrease above 100% can drive the price to zero or below.
	Value decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	// Inactive rules are excluded from run-all and simulation but remain
	// invocable through a manual single-rule run.
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
