package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"repricer/internal/engine"
	"repricer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore is an in-memory CatalogStore with per-product failure injection.
// Upserts arrive concurrently, so everything is mutex-guarded.
type stubStore struct {
	mu      sync.Mutex
	saved   map[uuid.UUID]model.Product
	failIDs map[uuid.UUID]bool
}

func newStubStore() *stubStore {
	return &stubStore{
		saved:   make(map[uuid.UUID]model.Product),
		failIDs: make(map[uuid.UUID]bool),
	}
}

func (s *stubStore) Upsert(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[p.ID] {
		return errors.New("store unavailable")
	}
	s.saved[p.ID] = *p
	return nil
}

var _ engine.CatalogStore = (*stubStore)(nil)

func TestRunRuleUpdatesMatchedProducts(t *testing.T) {
	store := newStubStore()
	rule := stockRule("Electronics", 5)

	products := []model.Product{
		catalogProduct("Electronics", 1000, 50, model.VelocityHigh), // matches
		catalogProduct("Electronics", 200, 5, model.VelocityLow),    // stock not above threshold
		catalogProduct("Beverages", 100, 50, model.VelocityLow),     // category gate
	}

	report := engine.RunRule(context.Background(), store, rule, products)

	require.Len(t, report.Results, 1)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 0, report.Failed)

	saved := store.saved[products[0].ID]
	assert.True(t, saved.Price.Equal(decimal.NewFromInt(900)), "saved price %s", saved.Price)

	// The caller's snapshot is never mutated — updates go through copies.
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(1000)))
}

func TestRunRulePersistsTwoDecimalPlaces(t *testing.T) {
	store := newStubStore()
	rule := stockRule("Electronics", 0)
	rule.Value = decimal.NewFromInt(15)

	products := []model.Product{
		catalogProduct("Electronics", 19.99, 10, model.VelocityLow),
	}

	report := engine.RunRule(context.Background(), store, rule, products)
	require.Equal(t, 1, report.Succeeded)

	// 19.99 * 0.85 = 16.9915 → persisted as 16.99
	saved := store.saved[products[0].ID]
	assert.True(t, saved.Price.Equal(decimal.NewFromFloat(16.99)), "saved price %s", saved.Price)
}

func TestRunRulePartialFailure(t *testing.T) {
	store := newStubStore()
	rule := stockRule("Electronics", 0)

	products := []model.Product{
		catalogProduct("Electronics", 100, 10, model.VelocityLow),
		catalogProduct("Electronics", 200, 10, model.VelocityLow),
		catalogProduct("Electronics", 300, 10, model.VelocityLow),
	}
	store.failIDs[products[1].ID] = true

	report := engine.RunRule(context.Background(), store, rule, products)

	// One failure never aborts siblings; counts reflect fulfilled updates only.
	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)

	var failed []uuid.UUID
	for _, res := range report.Results {
		if res.Err != nil {
			failed = append(failed, res.ProductID)
		}
	}
	require.Len(t, failed, 1)
	assert.Equal(t, products[1].ID, failed[0])

	// The two siblings landed.
	assert.Contains(t, store.saved, products[0].ID)
	assert.Contains(t, store.saved, products[2].ID)
}

func TestRunRuleIgnoresIsActive(t *testing.T) {
	// Manual "run now" is always permitted — the runner itself never consults
	// the active flag; only run-all filters on it.
	store := newStubStore()
	rule := stockRule("Electronics", 0)
	rule.IsActive = false

	products := []model.Product{catalogProduct("Electronics", 100, 10, model.VelocityLow)}
	report := engine.RunRule(context.Background(), store, rule, products)
	assert.Equal(t, 1, report.Succeeded)
}

func TestApplyBulkDiscount(t *testing.T) {
	store := newStubStore()
	products := []model.Product{
		catalogProduct("Electronics", 250, 10, model.VelocityLow),
		catalogProduct("Beverages", 100, 10, model.VelocityLow),
		catalogProduct("Snacks", 50, 10, model.VelocityLow),
	}

	// Explicit selection, no category gating: one Electronics, one Beverages.
	ids := []uuid.UUID{products[0].ID, products[1].ID}
	report := engine.ApplyBulkDiscount(context.Background(), store, ids, decimal.NewFromInt(20), products)

	require.Len(t, report.Results, 2)
	assert.Equal(t, 2, report.Succeeded)

	first := store.saved[products[0].ID]
	assert.True(t, first.IsOnSale)
	require.NotNil(t, first.SalePrice)
	assert.True(t, first.SalePrice.Equal(decimal.NewFromInt(200)), "sale price %s", first.SalePrice)
	// Base price is never modified by the bulk applicator.
	assert.True(t, first.Price.Equal(decimal.NewFromInt(250)))

	// Unselected product untouched.
	assert.NotContains(t, store.saved, products[2].ID)
}

func TestApplyBulkDiscountRoundsToWholeUnit(t *testing.T) {
	store := newStubStore()
	products := []model.Product{catalogProduct("Snacks", 19.99, 10, model.VelocityLow)}

	report := engine.ApplyBulkDiscount(context.Background(), store,
		[]uuid.UUID{products[0].ID}, decimal.NewFromInt(25), products)
	require.Equal(t, 1, report.Succeeded)

	// 19.99 * 0.75 = 14.9925 → whole-unit round → 15
	saved := store.saved[products[0].ID]
	require.NotNil(t, saved.SalePrice)
	assert.True(t, saved.SalePrice.Equal(decimal.NewFromInt(15)), "sale price %s", saved.SalePrice)
}

func TestNormalizeCatalog(t *testing.T) {
	store := newStubStore()
	products := []model.Product{
		catalogProduct("A", 100, 0, model.VelocityLow),   // .00 → untouched
		catalogProduct("B", 49.99, 0, model.VelocityLow), // .99 → untouched
		catalogProduct("C", 20.95, 0, model.VelocityLow), // .95 → untouched
		catalogProduct("D", 33.40, 0, model.VelocityLow), // rewritten → 33.99
		catalogProduct("E", 7.25, 0, model.VelocityLow),  // rewritten → 7.99
	}

	report := engine.NormalizeCatalog(context.Background(), store, products)

	// Only the two non-charm prices are rewritten; the count feeds user feedback.
	require.Len(t, report.Results, 2)
	assert.Equal(t, 2, report.Succeeded)

	assert.True(t, store.saved[products[3].ID].Price.Equal(decimal.NewFromFloat(33.99)))
	assert.True(t, store.saved[products[4].ID].Price.Equal(decimal.NewFromFloat(7.99)))
	assert.NotContains(t, store.saved, products[0].ID)
	assert.NotContains(t, store.saved, products[1].ID)
	assert.NotContains(t, store.saved, products[2].ID)
}
