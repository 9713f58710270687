package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateRuleRequest mirrors the rule editor form. Name, threshold and value
// are required — a rule missing any of them is rejected with a 422 before
// anything is stored.
type CreateRuleRequest struct {
	Name           string           `json:"name"            validate:"required,min=2,max=120"`
	TargetCategory string           `json:"target_category" validate:"required"`
	Condition      string           `json:"condition"       validate:"required,oneof='Stock > X' 'Expiry < X Days' 'Sales < X'"`
	Threshold      *decimal.Decimal `json:"threshold"       validate:"required"`
	Action         string           `json:"action"          validate:"required,oneof='Decrease Price %' 'Increase Price %'"`
	Value          *decimal.Decimal `json:"value"           validate:"required"`
	IsActive       *bool            `json:"is_active"`
}

type UpdateRuleRequest struct {
	Name           *string          `json:"name"            validate:"omitempty,min=2,max=120"`
	TargetCategory *string          `json:"target_category"`
	Condition      *string          `json:"condition"       validate:"omitempty,oneof='Stock > X' 'Expiry < X Days' 'Sales < X'"`
	Threshold      *decimal.Decimal `json:"threshold"`
	Action         *string          `json:"action"          validate:"omitempty,oneof='Decrease Price %' 'Increase Price %'"`
	Value          *decimal.Decimal `json:"value"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RuleResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TargetCategory string          `json:"target_category"`
	Condition      string          `json:"condition"`
	Threshold      decimal.Decimal `json:"threshold"`
	Action         string          `json:"action"`
	Value          decimal.Decimal `json:"value"`
	IsActive       bool            `json:"is_active"`
}

type RuleListResponse struct {
	Data  []RuleResponse `json:"data"`
	Total int            `json:"total"`
}
