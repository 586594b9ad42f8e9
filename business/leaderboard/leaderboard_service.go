package leaderboard

import (
	"context"
	"fmt"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/logger"
	"myLocalMarket/pkg/metrics"
	"time"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	// FindTopByPoints returns up to limit customers ordered by points
	// descending, then by creation order.
	FindTopByPoints(ctx context.Context, limit int) ([]domain.Customer, error)
}

// SellerRepository contract interface
type SellerRepository interface {
	FindTopByProfileVisit(ctx context.Context, limit int) ([]domain.Seller, error)
}

// Cache contract interface. A miss is (nil, false, nil).
type Cache interface {
	GetCustomerRankings(ctx context.Context, limit int) ([]domain.CustomerRanking, bool, error)
	SetCustomerRankings(ctx context.Context, limit int, rankings []domain.CustomerRanking, ttl time.Duration) error
	GetSellerRankings(ctx context.Context, limit int) ([]domain.SellerRanking, bool, error)
	SetSellerRankings(ctx context.Context, limit int, rankings []domain.SellerRanking, ttl time.Duration) error
}

type Options struct {
	CustomerLimit int
	SellerLimit   int
	MaxLimit      int
	CacheTTL      time.Duration
}

func DefaultOptions() Options {
	return Options{
		CustomerLimit: DefaultCustomerLimit,
		SellerLimit:   DefaultSellerLimit,
		MaxLimit:      100,
		CacheTTL:      30 * time.Second,
	}
}

type leaderboardService struct {
	customerRepo CustomerRepository
	sellerRepo   SellerRepository
	cache        Cache
	opts         Options
}

// NewLeaderboardService builds the ranker. cache may be nil.
func NewLeaderboardService(customerRepo CustomerRepository, sellerRepo SellerRepository, cache Cache, opts Options) *leaderboardService {
	return &leaderboardService{
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
		cache:        cache,
		opts:         opts,
	}
}

func (s *leaderboardService) RankCustomers(ctx context.Context, limit int) ([]domain.CustomerRanking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = s.clamp(limit, s.opts.CustomerLimit)

	if s.cache != nil {
		cached, ok, err := s.cache.GetCustomerRankings(ctx, limit)
		if err != nil {
			logger.Warn("Leaderboard cache read failed", "board", "customers", "error", err)
		}
		if ok {
			metrics.LeaderboardCacheTotal.WithLabelValues("customers", "hit").Inc()
			return cached, nil
		}
		metrics.LeaderboardCacheTotal.WithLabelValues("customers", "miss").Inc()
	}

	customers, err := s.customerRepo.FindTopByPoints(ctx, limit)
	if err != nil {
		logger.Error("Failed to load customers for leaderboard", err)
		return nil, fmt.Errorf("failed to load customers leaderboard: %w", err)
	}

	rankings := RankCustomers(customers, limit)

	if s.cache != nil {
		if err := s.cache.SetCustomerRankings(ctx, limit, rankings, s.opts.CacheTTL); err != nil {
			logger.Warn("Leaderboard cache write failed", "board", "customers", "error", err)
		}
	}

	return rankings, nil
}

func (s *leaderboardService) RankSellers(ctx context.Context, limit int) ([]domain.SellerRanking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = s.clamp(limit, s.opts.SellerLimit)

	if s.cache != nil {
		cached, ok, err := s.cache.GetSellerRankings(ctx, limit)
		if err != nil {
			logger.Warn("Leaderboard cache read failed", "board", "sellers", "error", err)
		}
		if ok {
			metrics.LeaderboardCacheTotal.WithLabelValues("sellers", "hit").Inc()
			return cached, nil
		}
		metrics.LeaderboardCacheTotal.WithLabelValues("sellers", "miss").Inc()
	}

	sellers, err := s.sellerRepo.FindTopByProfileVisit(ctx, limit)
	if err != nil {
		logger.Error("Failed to load sellers for leaderboard", err)
		return nil, fmt.Errorf("failed to load sellers leaderboard: %w", err)
	}

	rankings := RankSellers(sellers, limit)

	if s.cache != nil {
		if err := s.cache.SetSellerRankings(ctx, limit, rankings, s.opts.CacheTTL); err != nil {
			logger.Warn("Leaderboard cache write failed", "board", "sellers", "error", err)
		}
	}

	return rankings, nil
}

func (s *leaderboardService) clamp(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if s.opts.MaxLimit > 0 && limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}
	return limit
}
