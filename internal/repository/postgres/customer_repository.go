package postgres

import (
	"context"
	"errors"
	"fmt"

	"myLocalMarket/business/points"
	"myLocalMarket/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{
		DB: db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := conn(ctx, r.DB).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer
	err := conn(ctx, r.DB).First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to find customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer
	err := conn(ctx, r.DB).Where("email = ?", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to find customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := conn(ctx, r.DB).Model(&domain.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer: %w", err)
	}

	return count > 0, nil
}

func (r *CustomerRepository) PointsOf(ctx context.Context, id uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer
	err := conn(ctx, r.DB).Select("id", "points").First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrCustomerNotFound
		}
		return 0, fmt.Errorf("failed to read customer points: %w", err)
	}

	return customer.Points, nil
}

// AddPoints increments the total in SQL and rewrites the cached tiers and
// title in the same transaction. The UPDATE holds the row lock until commit,
// so concurrent grants serialize and derive from the final total.
func (r *CustomerRepository) AddPoints(ctx context.Context, id uint, amount int64, derive points.DeriveFunc) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer
	err := conn(ctx, r.DB).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&customer).
			Clauses(clause.Returning{}).
			Where("id = ?", id).
			Update("points", gorm.Expr("points + ?", amount))
		if result.Error != nil {
			return fmt.Errorf("failed to add points: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrCustomerNotFound
		}

		tiers, title := derive(customer.Points)
		customer.Batch = datatypes.JSONSlice[string](tiers)
		customer.Title = title

		err := tx.Model(&domain.Customer{}).
			Where("id = ?", id).
			Updates(map[string]any{"batch": customer.Batch, "title": title}).Error
		if err != nil {
			return fmt.Errorf("failed to update tiers: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

// FindTopByPoints orders ties by id so earlier customers stay ahead.
func (r *CustomerRepository) FindTopByPoints(ctx context.Context, limit int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer
	err := conn(ctx, r.DB).
		Select("id", "location", "points").
		Order("points DESC").
		Order("id ASC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load customer leaderboard: %w", err)
	}

	return customers, nil
}
