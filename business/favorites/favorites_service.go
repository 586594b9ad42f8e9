package favorites

import (
	"context"
	"errors"
	"fmt"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"
	"myLocalMarket/pkg/metrics"
	"sort"
	"time"
)

// FavoriteRepository contract interface
type FavoriteRepository interface {
	// Insert stores fav unless the customer already has that seller; the
	// check and the insert must be a single atomic step. Returns
	// domain.ErrDuplicateFavorite when nothing was inserted.
	Insert(ctx context.Context, fav *domain.FavoriteStore) error
	DeleteBySeller(ctx context.Context, customerID, sellerID uint) error
	FindByCustomer(ctx context.Context, customerID uint) ([]domain.FavoriteStore, error)
}

// CustomerRepository contract interface
type CustomerRepository interface {
	Exists(ctx context.Context, customerID uint) (bool, error)
}

// SellerRepository contract interface
type SellerRepository interface {
	Exists(ctx context.Context, sellerID uint) (bool, error)
}

type AddFavoriteInput struct {
	SellerID    uint
	StoreName   string
	StoreAvatar string
}

type favoritesService struct {
	favoriteRepo FavoriteRepository
	customerRepo CustomerRepository
	sellerRepo   SellerRepository
	now          func() time.Time
}

func NewFavoritesService(favoriteRepo FavoriteRepository, customerRepo CustomerRepository, sellerRepo SellerRepository) *favoritesService {
	return &favoritesService{
		favoriteRepo: favoriteRepo,
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
		now:          time.Now,
	}
}

func (s *favoritesService) AddFavorite(ctx context.Context, customerID uint, in AddFavoriteInput) (domain.FavoriteStore, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return domain.FavoriteStore{}, err
	}

	if in.SellerID == 0 {
		return domain.FavoriteStore{}, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}

	ok, err := s.sellerRepo.Exists(ctx, in.SellerID)
	if err != nil {
		return domain.FavoriteStore{}, fmt.Errorf("failed to look up seller: %w", err)
	}
	if !ok {
		return domain.FavoriteStore{}, domain.ErrSellerNotFound
	}

	fav := domain.FavoriteStore{
		CustomerID:  customerID,
		SellerID:    in.SellerID,
		StoreName:   in.StoreName,
		StoreAvatar: in.StoreAvatar,
		AddedAt:     s.now().UTC(),
	}

	if err := s.favoriteRepo.Insert(ctx, &fav); err != nil {
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			metrics.FavoriteOutcomesTotal.WithLabelValues("duplicate").Inc()
			return domain.FavoriteStore{}, err
		}
		logger.Error("Failed to add favorite store", "customer_id", customerID, "seller_id", in.SellerID, "error", err)
		return domain.FavoriteStore{}, fmt.Errorf("failed to add favorite store: %w", err)
	}

	metrics.FavoriteOutcomesTotal.WithLabelValues("added").Inc()
	return fav, nil
}

// RemoveFavorite is a no-op when the seller is not a favorite.
func (s *favoritesService) RemoveFavorite(ctx context.Context, customerID, sellerID uint) error {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return err
	}

	if err := s.favoriteRepo.DeleteBySeller(ctx, customerID, sellerID); err != nil {
		logger.Error("Failed to remove favorite store", "customer_id", customerID, "seller_id", sellerID, "error", err)
		return fmt.Errorf("failed to remove favorite store: %w", err)
	}

	return nil
}

// ListFavorites returns the most recently added favorites first.
func (s *favoritesService) ListFavorites(ctx context.Context, customerID uint) ([]domain.FavoriteStore, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	favs, err := s.favoriteRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		logger.Error("Failed to list favorite stores", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to list favorite stores: %w", err)
	}

	sort.SliceStable(favs, func(i, j int) bool {
		return favs[i].AddedAt.After(favs[j].AddedAt)
	})

	return favs, nil
}

func (s *favoritesService) requireCustomer(ctx context.Context, customerID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	ok, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to look up customer: %w", err)
	}
	if !ok {
		return domain.ErrCustomerNotFound
	}

	return nil
}
