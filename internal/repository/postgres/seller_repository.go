package postgres

import (
	"context"
	"errors"
	"fmt"

	"myLocalMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SellerRepository struct {
	DB *gorm.DB
}

func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{
		DB: db,
	}
}

func (r *SellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := conn(ctx, r.DB).Create(seller).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create seller: %w", err)
	}

	return nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id uint) (domain.Seller, error) {
	if err := ctx.Err(); err != nil {
		return domain.Seller{}, fmt.Errorf("context error: %w", err)
	}

	var seller domain.Seller
	err := conn(ctx, r.DB).First(&seller, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Seller{}, domain.ErrSellerNotFound
		}
		return domain.Seller{}, fmt.Errorf("failed to find seller: %w", err)
	}

	return seller, nil
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (domain.Seller, error) {
	if err := ctx.Err(); err != nil {
		return domain.Seller{}, fmt.Errorf("context error: %w", err)
	}

	var seller domain.Seller
	err := conn(ctx, r.DB).Where("email = ?", email).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Seller{}, domain.ErrSellerNotFound
		}
		return domain.Seller{}, fmt.Errorf("failed to find seller: %w", err)
	}

	return seller, nil
}

func (r *SellerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := conn(ctx, r.DB).Model(&domain.Seller{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check seller: %w", err)
	}

	return count > 0, nil
}

func (r *SellerRepository) IncrementProfileVisit(ctx context.Context, id uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var seller domain.Seller
	result := conn(ctx, r.DB).
		Model(&seller).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "profile_visit"}}}).
		Where("id = ?", id).
		UpdateColumn("profile_visit", gorm.Expr("profile_visit + 1"))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to record profile visit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, domain.ErrSellerNotFound
	}

	return seller.ProfileVisit, nil
}

// FindTopByProfileVisit orders ties by id so earlier sellers stay ahead.
func (r *SellerRepository) FindTopByProfileVisit(ctx context.Context, limit int) ([]domain.Seller, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var sellers []domain.Seller
	err := conn(ctx, r.DB).
		Select("id", "name", "store_name", "city", "profile_visit").
		Order("profile_visit DESC").
		Order("id ASC").
		Limit(limit).
		Find(&sellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load seller leaderboard: %w", err)
	}

	return sellers, nil
}
