package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Leaderboard LeaderboardConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" env-default:"MyLocalMarket API"`
	Version     string `env:"APP_VERSION" env-default:"1.0.0"`
	Environment string `env:"APP_ENV" env-default:"development"`
}

type ServerConfig struct {
	Port           string        `env:"PORT" env-default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
	AllowOrigins   []string      `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:5173"`
}

type DatabaseConfig struct {
	Host          string `env:"DB_HOST" env-default:"localhost"`
	Port          string `env:"DB_PORT" env-default:"5432"`
	User          string `env:"DB_USER" env-default:"postgres"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME" env-default:"my_local_market"`
	SSLMode       string `env:"DB_SSL_MODE" env-default:"disable"`
	MigrateOnBoot bool   `env:"DB_MIGRATE_ON_BOOT" env-default:"true"`
}

type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET"`
	TTL       time.Duration `env:"JWT_TTL" env-default:"24h"`
}

type RedisConfig struct {
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	PoolSize      int    `env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns  int    `env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	// leaderboard reads fall back to postgres past this
	OpTimeout time.Duration `env:"REDIS_OP_TIMEOUT" env-default:"500ms"`
}

type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" env-separator:","`
	PointsTopic string   `env:"KAFKA_POINTS_TOPIC" env-default:"customer.points.granted"`
	MaxRetries  uint64   `env:"KAFKA_MAX_RETRIES" env-default:"3"`
}

type LeaderboardConfig struct {
	CacheTTL      time.Duration `env:"LEADERBOARD_CACHE_TTL" env-default:"30s"`
	CustomerLimit int           `env:"LEADERBOARD_CUSTOMER_LIMIT" env-default:"20"`
	SellerLimit   int           `env:"LEADERBOARD_SELLER_LIMIT" env-default:"10"`
	MaxLimit      int           `env:"LEADERBOARD_MAX_LIMIT" env-default:"100"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("missing jwt secret")
	}

	if c.Database.Password == "" {
		return errors.New("missing database password")
	}

	if c.Leaderboard.CustomerLimit <= 0 || c.Leaderboard.SellerLimit <= 0 {
		return errors.New("leaderboard limits must be positive")
	}

	if c.Leaderboard.MaxLimit < c.Leaderboard.CustomerLimit || c.Leaderboard.MaxLimit < c.Leaderboard.SellerLimit {
		return errors.New("leaderboard max limit must cover the default limits")
	}

	return nil
}

// DSN renders the postgres connection string used by gorm and the migrator.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// MigrationURL renders the URL form expected by golang-migrate.
func (d DatabaseConfig) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.RedisHost) != ""
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}
