package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BulkDiscountRequest struct {
	ProductIDs []string         `json:"product_ids" validate:"required,min=1,dive,uuid"`
	Percent    *decimal.Decimal `json:"percent"     validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UpdateFailureDetail reports one product whose catalog write failed.
type UpdateFailureDetail struct {
	ProductID string `json:"product_id"`
	Error     string `json:"error"`
}

// BatchReportResponse is the single aggregate notification a batch operation
// produces: success/failure counts, not per-record prices. Failure details are
// included for structured consumers; the UI shows only the counts.
type BatchReportResponse struct {
	Matched   int                   `json:"matched"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Failures  []UpdateFailureDetail `json:"failures,omitempty"`
}

// SimulationResponse carries both the raw projected deltas and the scaled
// one-decimal display figures (raw ÷ 1000) the dashboard renders.
type SimulationResponse struct {
	RevenueDelta         decimal.Decimal `json:"revenue_delta"`
	MarginDelta          decimal.Decimal `json:"margin_delta"`
	RevenueDeltaDisplay  decimal.Decimal `json:"revenue_delta_display"`
	MarginDeltaDisplay   decimal.Decimal `json:"margin_delta_display"`
	ImpactedProductCount int             `json:"impacted_product_count"`
}

type NormalizeResponse struct {
	Rewritten int `json:"rewritten"`
	Failed    int `json:"failed"`
}

// ─── Price change history ────────────────────────────────────────────────────

type PriceChangeResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	RuleID      *string         `json:"rule_id"`
	PriceBefore decimal.Decimal `json:"price_before"`
	PriceAfter  decimal.Decimal `json:"price_after"`
	Source      string          `json:"source"`
	CreatedAt   string          `json:"created_at"`
}

type PriceChangeListResponse struct {
	Data  []PriceChangeResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
