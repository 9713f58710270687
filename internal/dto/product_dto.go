package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU           string           `json:"sku"            validate:"required,min=3,max=32"`
	Name          string           `json:"name"           validate:"required,min=2,max=120"`
	Category      string           `json:"category"       validate:"required"`
	Price         decimal.Decimal  `json:"price"          validate:"required,min=0"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	Stock         int              `json:"stock"          validate:"min=0"`
	SalesVelocity string           `json:"sales_velocity" validate:"omitempty,oneof=High Medium Low"`
	ExpiresAt     *string          `json:"expires_at"     validate:"omitempty,datetime=2006-01-02"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2,max=120"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"          validate:"omitempty,min=0"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	Stock         *int             `json:"stock"          validate:"omitempty,min=0"`
	SalesVelocity *string          `json:"sales_velocity" validate:"omitempty,oneof=High Medium Low"`
	ExpiresAt     *string          `json:"expires_at"     validate:"omitempty,datetime=2006-01-02"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	SKU      string `form:"sku"`
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	Stock         int              `json:"stock"`
	SalesVelocity string           `json:"sales_velocity"`
	ExpiresAt     *string          `json:"expires_at"`
	IsOnSale      bool             `json:"is_on_sale"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Active        bool             `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceLookupResponse is returned by the public price check endpoint (no auth required).
type PriceLookupResponse struct {
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Stock     int              `json:"stock"`
	Category  string           `json:"category"`
	IsOnSale  bool             `json:"is_on_sale"`
	SalePrice *decimal.Decimal `json:"sale_price"`
}
