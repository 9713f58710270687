package repository

import (
	"context"

	"repricer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleRepository owns the pricing rule collection: rules live in their own
// store with explicit CRUD, decoupled from any rendering layer.
type RuleRepository interface {
	Create(ctx context.Context, r *model.PricingRule) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PricingRule, error)
	List(ctx context.Context) ([]model.PricingRule, error)
	// ListActive returns only rules with is_active = true — the set that
	// run-all and simulation iterate.
	ListActive(ctx context.Context) ([]model.PricingRule, error)
	Update(ctx context.Context, r *model.PricingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ruleRepo struct{ db *gorm.DB }

func NewRuleRepository(db *gorm.DB) RuleRepository { return &ruleRepo{db: db} }

func (r *ruleRepo) Create(ctx context.Context, rule *model.PricingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PricingRule, error) {
	var rule model.PricingRule
	err := r.db.WithContext(ctx).First(&rule, id).Error
	return &rule, err
}

func (r *ruleRepo) List(ctx context.Context) ([]model.PricingRule, error) {
	var rules []model.PricingRule
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rules).Error
	return rules, err
}

func (r *ruleRepo) ListActive(ctx context.Context) ([]model.PricingRule, error) {
	var rules []model.PricingRule
	err := r.db.WithContext(ctx).Where("is_active = true").Order("created_at ASC").Find(&rules).Error
	return rules, err
}

func (r *ruleRepo) Update(ctx context.Context, rule *model.PricingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ruleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PricingRule{}, id).Error
}
