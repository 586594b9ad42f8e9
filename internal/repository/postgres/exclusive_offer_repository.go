package postgres

import (
	"context"
	"fmt"

	"myLocalMarket/domain"

	"gorm.io/gorm"
)

type ExclusiveOfferRepository struct {
	DB *gorm.DB
}

func NewExclusiveOfferRepository(db *gorm.DB) *ExclusiveOfferRepository {
	return &ExclusiveOfferRepository{
		DB: db,
	}
}

func (r *ExclusiveOfferRepository) Create(ctx context.Context, offer *domain.ExclusiveOffer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := conn(ctx, r.DB).Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create exclusive offer: %w", err)
	}

	return nil
}

// FindBySeller returns offers newest first. sellerID 0 lists every seller.
func (r *ExclusiveOfferRepository) FindBySeller(ctx context.Context, sellerID uint) ([]domain.ExclusiveOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := conn(ctx, r.DB).Model(&domain.ExclusiveOffer{})
	if sellerID != 0 {
		query = query.Where("seller_id = ?", sellerID)
	}

	var offers []domain.ExclusiveOffer
	if err := query.Order("uploaded_date DESC").Order("id DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to find exclusive offers: %w", err)
	}

	return offers, nil
}

// DeleteOwned removes an offer only when it belongs to the seller.
func (r *ExclusiveOfferRepository) DeleteOwned(ctx context.Context, sellerID, offerID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := conn(ctx, r.DB).
		Where("id = ? AND seller_id = ?", offerID, sellerID).
		Delete(&domain.ExclusiveOffer{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete exclusive offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOfferNotFound
	}

	return nil
}
