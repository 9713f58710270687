package engine

import (
	"context"
	"sync"

	"repricer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogStore is the write half of the external catalog collaborator.
// Each Upsert replaces the whole product record. The store's own transactional
// semantics are the only guard against concurrent writers racing on the same
// product — the engine does no locking of its own.
type CatalogStore interface {
	Upsert(ctx context.Context, p *model.Product) error
}

// UpdateResult is the per-product outcome of one batch operation.
// A non-nil Err marks an individual UpdateFailure; it never aborts siblings
// and is never retried automatically.
type UpdateResult struct {
	ProductID uuid.UUID
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	Err       error
}

// BatchReport aggregates the per-item results of a concurrent batch.
// Succeeded counts only fulfilled updates.
type BatchReport struct {
	Results   []UpdateResult
	Succeeded int
	Failed    int
}

func (b *BatchReport) tally() {
	for _, r := range b.Results {
		if r.Err != nil {
			b.Failed++
		} else {
			b.Succeeded++
		}
	}
}

// dispatch fires one Upsert per product concurrently and waits for every call
// to settle before returning — an await-all join, never fail-fast. mutate is
// applied to a copy of each product before it is written, so the caller's
// snapshot stays untouched.
func dispatch(ctx context.Context, store CatalogStore, products []*model.Product, mutate func(*model.Product) UpdateResult) BatchReport {
	report := BatchReport{Results: make([]UpdateResult, len(products))}

	var wg sync.WaitGroup
	for i, p := range products {
		wg.Add(1)
		go func(i int, p *model.Product) {
			defer wg.Done()

			updated := *p
			res := mutate(&updated)
			if res.Err == nil {
				res.Err = store.Upsert(ctx, &updated)
			}
			report.Results[i] = res
		}(i, p)
	}
	wg.Wait()

	report.tally()
	return report
}

// RunRule applies one rule to a catalog snapshot: category gate, condition
// match, price derivation rounded to 2dp, then one independent concurrent
// update per matched product. Partial failure is reported per item; there is
// no rollback of already-applied siblings.
//
// RunRule does not consult rule.IsActive — a manual "run now" is always
// permitted. Filtering to active rules is the caller's concern.
func RunRule(ctx context.Context, store CatalogStore, rule *model.PricingRule, products []model.Product) BatchReport {
	var matched []*model.Product
	for i := range products {
		if Matches(&products[i], rule) {
			matched = append(matched, &products[i])
		}
	}

	return dispatch(ctx, store, matched, func(p *model.Product) UpdateResult {
		old := p.Price
		p.Price = Apply(p, rule).Round(2)
		return UpdateResult{ProductID: p.ID, OldPrice: old, NewPrice: p.Price}
	})
}

// ApplyBulkDiscount marks every selected product as on sale at a percentage
// markdown of its current price, rounded to a whole unit. The base Price field
// is never modified — this is what distinguishes the bulk applicator from a
// rule run. No category or condition gating applies: the selection is explicit
// and user-driven.
func ApplyBulkDiscount(ctx context.Context, store CatalogStore, ids []uuid.UUID, percent decimal.Decimal, products []model.Product) BatchReport {
	selected := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	var targets []*model.Product
	for i := range products {
		if selected[products[i].ID] {
			targets = append(targets, &products[i])
		}
	}

	pct := percent.Div(hundred)
	return dispatch(ctx, store, targets, func(p *model.Product) UpdateResult {
		sale := p.Price.Mul(decimal.NewFromInt(1).Sub(pct)).Round(0)
		p.IsOnSale = true
		p.SalePrice = &sale
		return UpdateResult{ProductID: p.ID, OldPrice: p.Price, NewPrice: sale}
	})
}

// NormalizeCatalog rewrites every price whose fractional part is not already
// a charm ending (.99 / .95 / .00) in one catalog-wide pass. The report's
// result count tells the caller how many records were rewritten.
func NormalizeCatalog(ctx context.Context, store CatalogStore, products []model.Product) BatchReport {
	var targets []*model.Product
	for i := range products {
		if !Normalize(products[i].Price).Equal(products[i].Price) {
			targets = append(targets, &products[i])
		}
	}

	return dispatch(ctx, store, targets, func(p *model.Product) UpdateResult {
		old := p.Price
		p.Price = Normalize(p.Price)
		return UpdateResult{ProductID: p.ID, OldPrice: old, NewPrice: p.Price}
	})
}
