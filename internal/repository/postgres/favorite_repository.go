package postgres

import (
	"context"
	"errors"
	"fmt"

	"myLocalMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{
		DB: db,
	}
}

// Insert relies on the (customer_id, seller_id) unique index: a conflicting
// row is skipped and reported as a duplicate. A seller_id with no seller
// row fails the foreign key.
func (r *FavoriteRepository) Insert(ctx context.Context, fav *domain.FavoriteStore) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := conn(ctx, r.DB).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "seller_id"}},
			DoNothing: true,
		}).
		Create(fav)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return domain.ErrSellerNotFound
		}
		return fmt.Errorf("failed to insert favorite store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrDuplicateFavorite
	}

	return nil
}

func (r *FavoriteRepository) DeleteBySeller(ctx context.Context, customerID, sellerID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := conn(ctx, r.DB).
		Where("customer_id = ? AND seller_id = ?", customerID, sellerID).
		Delete(&domain.FavoriteStore{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete favorite store: %w", err)
	}

	return nil
}

func (r *FavoriteRepository) FindByCustomer(ctx context.Context, customerID uint) ([]domain.FavoriteStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var favs []domain.FavoriteStore
	err := conn(ctx, r.DB).
		Where("customer_id = ?", customerID).
		Order("added_at DESC").
		Order("id DESC").
		Find(&favs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorite stores: %w", err)
	}

	return favs, nil
}
