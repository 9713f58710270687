package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Price change sources.
const (
	ChangeSourceRuleRun      = "rule_run"
	ChangeSourceNormalize    = "normalize"
	ChangeSourceBulkDiscount = "bulk_discount"
)

// PriceChange records every price mutation issued by the engine.
// Records are append-only — never deleted or modified.
type PriceChange struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	// RuleID is set only for rule-run mutations.
	RuleID      *uuid.UUID      `gorm:"type:uuid;index"`
	PriceBefore decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceAfter  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Source      string          `gorm:"not null"` // rule_run | normalize | bulk_discount
	CreatedAt   time.Time

	Product Product `gorm:"foreignKey:ProductID"`
}
