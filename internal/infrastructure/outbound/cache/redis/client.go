package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

type Client struct {
	client *redis.Client
	log    ports.Logger
}

// NewClient dials redis and fails fast when the first PING does not succeed.
func NewClient(cfg config.Redis, log ports.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	c := &Client{client: rdb, log: log}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis", slog.String("addr", rdb.Options().Addr), slog.Int("db", cfg.DB))
	return c, nil
}

// Get decodes the JSON value at key into dest, or returns ErrCacheMiss.
func (c *Client) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.log.Debug("Cache miss", slog.String("key", key))
		return custom_errors.ErrCacheMiss
	case err != nil:
		return c.fail("get", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return c.fail("decode", key, err)
	}
	c.log.Debug("Cache hit", slog.String("key", key))
	return nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return c.fail("encode", key, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return c.fail("set", key, err)
	}
	c.log.Debug("Cache set", slog.String("key", key), slog.Duration("ttl", ttl))
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	removed, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return c.fail("delete", key, err)
	}
	c.log.Debug("Cache delete", slog.String("key", key), slog.Int64("removed", removed))
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.log.Error("Redis ping failed", slog.String("error", err.Error()))
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	c.log.Info("Redis connection closed")
	return nil
}

func (c *Client) fail(op, key string, err error) error {
	c.log.Error("Redis "+op+" failed", slog.String("key", key), slog.String("error", err.Error()))
	return fmt.Errorf("redis %s %q: %w", op, key, err)
}
