package redis

import (
	"context"
	"fmt"
	"myLocalMarket/pkg/config"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the leaderboard cache. A slow cache should cost a
// leaderboard request no more than OpTimeout before it falls back to postgres.
func NewRedisClient(config *config.Config) (*redis.Client, error) {
	rc := config.Redis
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(rc.RedisHost, rc.RedisPort),
		Password:     rc.RedisPassword,
		DB:           rc.RedisDB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  rc.OpTimeout,
		WriteTimeout: rc.OpTimeout,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		PoolTimeout:  rc.OpTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to leaderboard cache at %s: %w", client.Options().Addr, err)
	}

	return client, nil
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
