package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"myLocalMarket/domain"

	"github.com/redis/go-redis/v9"
)

const (
	boardCustomers = "customers"
	boardSellers   = "sellers"
)

type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{
		client: client,
	}
}

// key format: "leaderboard:{board}:{limit}"
func leaderboardKey(board string, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", board, limit)
}

func (r *LeaderboardCache) GetCustomerRankings(ctx context.Context, limit int) ([]domain.CustomerRanking, bool, error) {
	var rankings []domain.CustomerRanking
	ok, err := r.get(ctx, leaderboardKey(boardCustomers, limit), &rankings)
	return rankings, ok, err
}

func (r *LeaderboardCache) SetCustomerRankings(ctx context.Context, limit int, rankings []domain.CustomerRanking, ttl time.Duration) error {
	return r.set(ctx, leaderboardKey(boardCustomers, limit), rankings, ttl)
}

func (r *LeaderboardCache) GetSellerRankings(ctx context.Context, limit int) ([]domain.SellerRanking, bool, error) {
	var rankings []domain.SellerRanking
	ok, err := r.get(ctx, leaderboardKey(boardSellers, limit), &rankings)
	return rankings, ok, err
}

func (r *LeaderboardCache) SetSellerRankings(ctx context.Context, limit int, rankings []domain.SellerRanking, ttl time.Duration) error {
	return r.set(ctx, leaderboardKey(boardSellers, limit), rankings, ttl)
}

func (r *LeaderboardCache) get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get leaderboard from Redis: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	return true, nil
}

func (r *LeaderboardCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store leaderboard in Redis: %w", err)
	}

	return nil
}
