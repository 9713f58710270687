package service

import (
	"context"
	"errors"

	"repricer/internal/dto"
	"repricer/internal/engine"
	"repricer/internal/model"
	"repricer/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PricingService orchestrates the rule engine against the catalog store:
// live runs, the read-only impact simulation, bulk discounts, and the
// catalog-wide charm-ending pass.
//
// Every operation fetches a fresh catalog snapshot — the service keeps no
// product cache, so back-to-back runs observe each other's effects.
type PricingService interface {
	RunRule(ctx context.Context, ruleID uuid.UUID) (*dto.BatchReportResponse, error)
	RunAllActive(ctx context.Context) (*dto.BatchReportResponse, error)
	Simulate(ctx context.Context) (*dto.SimulationResponse, error)
	ApplyBulkDiscount(ctx context.Context, req dto.BulkDiscountRequest) (*dto.BatchReportResponse, error)
	NormalizePrices(ctx context.Context) (*dto.NormalizeResponse, error)
}

type pricingService struct {
	products repository.ProductRepository
	rules    repository.RuleRepository
	changes  repository.PriceChangeRepository
	rdb      *redis.Client // nil in unit tests — cache invalidation becomes a no-op
}

func NewPricingService(
	products repository.ProductRepository,
	rules repository.RuleRepository,
	changes repository.PriceChangeRepository,
	rdb *redis.Client,
) PricingService {
	return &pricingService{products: products, rules: rules, changes: changes, rdb: rdb}
}

// RunRule executes one rule against a fresh catalog snapshot. The rule does
// not need to be active — manual "run now" is always permitted.
//
// The batch is dispatched under a detached context: once in flight it runs to
// completion even if the triggering request is torn down.
func (s *pricingService) RunRule(ctx context.Context, ruleID uuid.UUID) (*dto.BatchReportResponse, error) {
	rule, err := s.rules.FindByID(ctx, ruleID)
	if err != nil {
		return nil, errors.New("rule not found")
	}
	return s.runOne(ctx, rule)
}

func (s *pricingService) runOne(ctx context.Context, rule *model.PricingRule) (*dto.BatchReportResponse, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	batchCtx := context.WithoutCancel(ctx)
	report := engine.RunRule(batchCtx, s.products, rule, products)

	s.recordChanges(batchCtx, report, &rule.ID, model.ChangeSourceRuleRun, products)

	log.Info().
		Str("rule", rule.Name).
		Str("category", rule.TargetCategory).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("pricing rule executed")

	return reportToResponse(report), nil
}

// RunAllActive executes every active rule in creation order. Each rule runs
// against its own fresh snapshot so later rules see earlier rules' effects.
// Per-rule reports are folded into one aggregate summary.
func (s *pricingService) RunAllActive(ctx context.Context) (*dto.BatchReportResponse, error) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	total := &dto.BatchReportResponse{}
	for i := range rules {
		resp, err := s.runOne(ctx, &rules[i])
		if err != nil {
			return nil, err
		}
		total.Matched += resp.Matched
		total.Succeeded += resp.Succeeded
		total.Failed += resp.Failed
		total.Failures = append(total.Failures, resp.Failures...)
	}

	log.Info().
		Int("rules", len(rules)).
		Int("succeeded", total.Succeeded).
		Int("failed", total.Failed).
		Msg("all active pricing rules executed")

	return total, nil
}

// Simulate projects the aggregate impact of all active rules without touching
// the catalog. Safe to invoke any number of times.
func (s *pricingService) Simulate(ctx context.Context) (*dto.SimulationResponse, error) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := engine.Simulate(rules, products)
	revDisplay, marginDisplay := result.ScaledForDisplay()

	return &dto.SimulationResponse{
		RevenueDelta:         result.RevenueDelta,
		MarginDelta:          result.MarginDelta,
		RevenueDeltaDisplay:  revDisplay,
		MarginDeltaDisplay:   marginDisplay,
		ImpactedProductCount: result.ImpactedCount,
	}, nil
}

func (s *pricingService) ApplyBulkDiscount(ctx context.Context, req dto.BulkDiscountRequest) (*dto.BatchReportResponse, error) {
	ids := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("invalid product id: " + raw)
		}
		ids = append(ids, id)
	}
	if req.Percent == nil {
		return nil, errors.New("percent is required")
	}

	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	batchCtx := context.WithoutCancel(ctx)
	report := engine.ApplyBulkDiscount(batchCtx, s.products, ids, *req.Percent, products)

	s.recordChanges(batchCtx, report, nil, model.ChangeSourceBulkDiscount, products)

	log.Info().
		Int("selected", len(ids)).
		Str("percent", req.Percent.String()).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("bulk discount applied")

	return reportToResponse(report), nil
}

// NormalizePrices runs the psychological pricing pass over the whole catalog
// and reports how many records were rewritten.
func (s *pricingService) NormalizePrices(ctx context.Context) (*dto.NormalizeResponse, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	batchCtx := context.WithoutCancel(ctx)
	report := engine.NormalizeCatalog(batchCtx, s.products, products)

	s.recordChanges(batchCtx, report, nil, model.ChangeSourceNormalize, products)

	log.Info().
		Int("rewritten", report.Succeeded).
		Int("failed", report.Failed).
		Msg("charm-ending normalization pass complete")

	return &dto.NormalizeResponse{Rewritten: report.Succeeded, Failed: report.Failed}, nil
}

// recordChanges appends one audit row per fulfilled update and invalidates
// the public price cache for the touched SKUs. Both are best-effort: an audit
// or cache failure never fails the batch that already settled.
func (s *pricingService) recordChanges(
	ctx context.Context,
	report engine.BatchReport,
	ruleID *uuid.UUID,
	source string,
	snapshot []model.Product,
) {
	skuByID := make(map[uuid.UUID]string, len(snapshot))
	for i := range snapshot {
		skuByID[snapshot[i].ID] = snapshot[i].SKU
	}

	var staleKeys []string
	for _, res := range report.Results {
		if res.Err != nil {
			continue
		}
		change := model.PriceChange{
			ProductID:   res.ProductID,
			RuleID:      ruleID,
			PriceBefore: res.OldPrice,
			PriceAfter:  res.NewPrice,
			Source:      source,
		}
		if err := s.changes.Create(ctx, &change); err != nil {
			log.Warn().Err(err).Str("product_id", res.ProductID.String()).Msg("price change audit write failed")
		}
		if sku, ok := skuByID[res.ProductID]; ok {
			staleKeys = append(staleKeys, "price:"+sku)
		}
	}

	if s.rdb != nil && len(staleKeys) > 0 {
		if err := s.rdb.Del(ctx, staleKeys...).Err(); err != nil {
			log.Warn().Err(err).Int("keys", len(staleKeys)).Msg("price cache invalidation failed")
		}
	}
}

func reportToResponse(r engine.BatchReport) *dto.BatchReportResponse {
	resp := &dto.BatchReportResponse{
		Matched:   len(r.Results),
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
	}
	for _, res := range r.Results {
		if res.Err != nil {
			resp.Failures = append(resp.Failures, dto.UpdateFailureDetail{
				ProductID: res.ProductID.String(),
				Error:     res.Err.Error(),
			})
		}
	}
	return resp
}
