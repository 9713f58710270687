package repository

import (
	"context"

	"repricer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceChangeRepository stores the append-only audit trail of engine price
// mutations.
type PriceChangeRepository interface {
	Create(ctx context.Context, c *model.PriceChange) error
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.PriceChange, int64, error)
}

type priceChangeRepo struct{ db *gorm.DB }

func NewPriceChangeRepository(db *gorm.DB) PriceChangeRepository {
	return &priceChangeRepo{db: db}
}

func (r *priceChangeRepo) Create(ctx context.Context, c *model.PriceChange) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// ListByProduct returns paginated price-change records for one product,
// ordered newest-first.
func (r *priceChangeRepo) ListByProduct(
	ctx context.Context,
	productID uuid.UUID,
	page, limit int,
) ([]model.PriceChange, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.PriceChange{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.PriceChange
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
