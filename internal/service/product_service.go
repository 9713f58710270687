package service

import (
	"context"
	"errors"
	"time"

	"repricer/internal/dto"
	"repricer/internal/model"
	"repricer/internal/repository"

	"github.com/google/uuid"
)

// ProductService defines the business logic contract for catalog records.
// Thin CRUD — the pricing engine is the interesting consumer of this data.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListPriceChanges(ctx context.Context, id uuid.UUID, page, limit int) (*dto.PriceChangeListResponse, error)
}

type productService struct {
	repo    repository.ProductRepository
	changes repository.PriceChangeRepository
}

func NewProductService(repo repository.ProductRepository, changes repository.PriceChangeRepository) ProductService {
	return &productService{repo: repo, changes: changes}
}

const dateLayout = "2006-01-02"

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := model.Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		Stock:         req.Stock,
		SalesVelocity: model.VelocityLow,
		Active:        true,
	}
	if req.SalesVelocity != "" {
		p.SalesVelocity = model.SalesVelocity(req.SalesVelocity)
	}
	if req.ExpiresAt != nil {
		t, err := time.Parse(dateLayout, *req.ExpiresAt)
		if err != nil {
			return nil, errors.New("invalid expires_at date")
		}
		p.ExpiresAt = &t
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productToResponse(&p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CostPrice != nil {
		p.CostPrice = req.CostPrice
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.SalesVelocity != nil {
		p.SalesVelocity = model.SalesVelocity(*req.SalesVelocity)
	}
	if req.ExpiresAt != nil {
		t, err := time.Parse(dateLayout, *req.ExpiresAt)
		if err != nil {
			return nil, errors.New("invalid expires_at date")
		}
		p.ExpiresAt = &t
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) ListPriceChanges(ctx context.Context, id uuid.UUID, page, limit int) (*dto.PriceChangeListResponse, error) {
	rows, total, err := s.changes.ListByProduct(ctx, id, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceChangeResponse, 0, len(rows))
	for _, row := range rows {
		var ruleID *string
		if row.RuleID != nil {
			v := row.RuleID.String()
			ruleID = &v
		}
		items = append(items, dto.PriceChangeResponse{
			ID:          row.ID.String(),
			ProductID:   row.ProductID.String(),
			RuleID:      ruleID,
			PriceBefore: row.PriceBefore,
			PriceAfter:  row.PriceAfter,
			Source:      row.Source,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.PriceChangeListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	var expires *string
	if p.ExpiresAt != nil {
		v := p.ExpiresAt.Format(dateLayout)
		expires = &v
	}
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		Stock:         p.Stock,
		SalesVelocity: string(p.SalesVelocity),
		ExpiresAt:     expires,
		IsOnSale:      p.IsOnSale,
		SalePrice:     p.SalePrice,
		Active:        p.Active,
	}
}
