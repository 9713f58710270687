package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesVelocity is a coarse demand proxy used only to estimate monthly unit
// sales during impact simulation. It is never derived from sale records here.
type SalesVelocity string

const (
	VelocityHigh   SalesVelocity = "High"
	VelocityMedium SalesVelocity = "Medium"
	VelocityLow    SalesVelocity = "Low"
)

// Product is a catalog record. The pricing engine reads full snapshots and
// writes back whole-record replacements — no partial-field updates.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU      string    `gorm:"uniqueIndex;not null"`
	Name     string    `gorm:"index;not null"`
	Category string    `gorm:"not null;index"`
	// Price is the current retail price. Rule runs mutate it in place.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// CostPrice is optional; when absent the engine falls back to 0.7×Price
	// at read time. The fallback is never written back to storage.
	CostPrice     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Stock         int              `gorm:"not null;default:0"`
	SalesVelocity SalesVelocity    `gorm:"not null;default:'Low'"`
	ExpiresAt     *time.Time
	// IsOnSale / SalePrice are set by the bulk discount applicator only.
	// Price itself is untouched by that path.
	IsOnSale  bool             `gorm:"not null;default:false"`
	SalePrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Active    bool             `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// costFallbackRatio is the assumed cost share of retail price when CostPrice
// is not recorded.
var costFallbackRatio = decimal.NewFromFloat(0.7)

// EffectiveCost returns CostPrice when present, otherwise 0.7×Price.
func (p *Product) EffectiveCost() decimal.Decimal {
	if p.CostPrice != nil {
		return *p.CostPrice
	}
	return p.Price.Mul(costFallbackRatio)
}

// EstimatedMonthlyUnits maps the velocity tier to a fixed units-per-month
// proxy. Unknown or missing tiers degrade to the Low figure rather than error.
func (p *Product) EstimatedMonthlyUnits() int64 {
	switch p.SalesVelocity {
	case VelocityHigh:
		return 20
	case VelocityMedium:
		return 10
	default:
		return 2
	}
}
