package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"repricer/internal/apierror"
	"repricer/internal/dto"
	"repricer/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// PriceCheckHandler serves the public price lookup endpoint.
// No authentication required — no side effects whatsoever.
type PriceCheckHandler struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewPriceCheckHandler(repo repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) *PriceCheckHandler {
	return &PriceCheckHandler{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

// GetPriceBySKU looks a product's price up through a redis read-through cache.
// The pricing service invalidates these keys whenever the engine rewrites a
// price, so lookups never serve a pre-run price for longer than one batch.
func (h *PriceCheckHandler) GetPriceBySKU(c *gin.Context) {
	sku := c.Param("sku")
	ctx := c.Request.Context()
	cacheKey := "price:" + sku

	// 1. Try cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceLookupResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	product, err := h.repo.FindBySKU(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}

	resp := dto.PriceLookupResponse{
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		Category:  product.Category,
		IsOnSale:  product.IsOnSale,
		SalePrice: product.SalePrice,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
