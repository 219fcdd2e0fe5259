package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int

	PoolSize    int
	MinIdleConn int

	MaxRetries    int
	RetryInterval time.Duration
}

func NewConfig(addr string) *Config {
	return &Config{
		Addr:          addr,
		PoolSize:      10,
		MinIdleConn:   2,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
}

// Connect dials Redis and verifies the connection with a ping, retrying
// MaxRetries times before giving up.
func Connect(ctx context.Context, cfg *Config) (*redis.Client, error) {
	var lastErr error

	for i := 0; i <= cfg.MaxRetries; i++ {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConn,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolTimeout:  4 * time.Second,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			lastErr = fmt.Errorf("ping redis: %w", err)
			client.Close()
			if i < cfg.MaxRetries {
				time.Sleep(cfg.RetryInterval)
			}
			continue
		}

		return client, nil
	}

	return nil, fmt.Errorf("connect to redis after %d retries: %w", cfg.MaxRetries, lastErr)
}
