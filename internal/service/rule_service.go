package service

import (
	"context"
	"errors"

	"repricer/internal/dto"
	"repricer/internal/model"
	"repricer/internal/repository"

	"github.com/google/uuid"
)

// Validation errors — a rule missing any required field is rejected before it
// reaches the repository; no partial rule is ever stored.
var (
	ErrRuleNameRequired      = errors.New("rule name is required")
	ErrRuleValueRequired     = errors.New("rule value is required")
	ErrRuleThresholdRequired = errors.New("rule threshold is required")
)

// RuleService defines the business logic contract for pricing rule lifecycle.
type RuleService interface {
	Create(ctx context.Context, req dto.CreateRuleRequest) (*dto.RuleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRuleRequest) (*dto.RuleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Toggle(ctx context.Context, id uuid.UUID) (*dto.RuleResponse, error)
	List(ctx context.Context) (*dto.RuleListResponse, error)
}

type ruleService struct {
	repo repository.RuleRepository
}

func NewRuleService(repo repository.RuleRepository) RuleService {
	return &ruleService{repo: repo}
}

func (s *ruleService) Create(ctx context.Context, req dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	if req.Name == "" {
		return nil, ErrRuleNameRequired
	}
	if req.Value == nil {
		return nil, ErrRuleValueRequired
	}
	if req.Threshold == nil {
		return nil, ErrRuleThresholdRequired
	}

	rule := model.PricingRule{
		Name:           req.Name,
		TargetCategory: req.TargetCategory,
		Condition:      model.Condition(req.Condition),
		Threshold:      *req.Threshold,
		Action:         model.Action(req.Action),
		Value:          *req.Value,
		IsActive:       true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, &rule); err != nil {
		return nil, err
	}
	return ruleToResponse(&rule), nil
}

func (s *ruleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("rule not found")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrRuleNameRequired
		}
		rule.Name = *req.Name
	}
	if req.TargetCategory != nil {
		rule.TargetCategory = *req.TargetCategory
	}
	if req.Condition != nil {
		rule.Condition = model.Condition(*req.Condition)
	}
	if req.Threshold != nil {
		rule.Threshold = *req.Threshold
	}
	if req.Action != nil {
		rule.Action = model.Action(*req.Action)
	}
	if req.Value != nil {
		rule.Value = *req.Value
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return ruleToResponse(rule), nil
}

func (s *ruleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("rule not found")
	}
	return s.repo.Delete(ctx, id)
}

// Toggle flips is_active. Inactive rules drop out of run-all and simulation
// but stay manually runnable.
func (s *ruleService) Toggle(ctx context.Context, id uuid.UUID) (*dto.RuleResponse, error) {
	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("rule not found")
	}
	rule.IsActive = !rule.IsActive
	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return ruleToResponse(rule), nil
}

func (s *ruleService) List(ctx context.Context) (*dto.RuleListResponse, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, *ruleToResponse(&rules[i]))
	}
	return &dto.RuleListResponse{Data: items, Total: len(items)}, nil
}

func ruleToResponse(r *model.PricingRule) *dto.RuleResponse {
	return &dto.RuleResponse{
		ID:             r.ID.String(),
		Name:           r.Name,
		TargetCategory: r.TargetCategory,
		Condition:      string(r.Condition),
		Threshold:      r.Threshold,
		Action:         string(r.Action),
		Value:          r.Value,
		IsActive:       r.IsActive,
	}
}
