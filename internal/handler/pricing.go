package handler

import (
	"net/http"

	"repricer/internal/apierror"
	"repricer/internal/dto"
	"repricer/internal/service"
	"repricer/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PricingHandler exposes the rule engine operations: manual runs, the async
// run-all trigger, impact simulation, bulk discounts, and the charm-ending
// normalization pass.
type PricingHandler struct {
	svc        service.PricingService
	dispatcher *worker.Dispatcher
}

func NewPricingHandler(svc service.PricingService, dispatcher *worker.Dispatcher) *PricingHandler {
	return &PricingHandler{svc: svc, dispatcher: dispatcher}
}

// RunRule executes one rule synchronously. Inactive rules are allowed —
// manual "run now" always works.
func (h *PricingHandler) RunRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.RunRule(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RunAll enqueues a run-all-active-rules job on the worker queue and returns
// 202 immediately. The batch outcome lands in the logs and the price-change
// audit trail.
func (h *PricingHandler) RunAll(c *gin.Context) {
	if err := h.dispatcher.EnqueueRunAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to enqueue repricing job"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *PricingHandler) Simulate(c *gin.Context) {
	resp, err := h.svc.Simulate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("simulation failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) BulkDiscount(c *gin.Context) {
	var req dto.BulkDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyBulkDiscount(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) Normalize(c *gin.Context) {
	resp, err := h.svc.NormalizePrices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("normalization failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
