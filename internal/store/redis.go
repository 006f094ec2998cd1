// Package store persists forecast snapshots for downstream consumers. The
// engine itself stays cache-free; publishing happens at the caller layer.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wallstonks/internal/domain"

	"github.com/redis/go-redis/v9"
)

const latestForecastKey = "wallstonks:forecast:latest"

var newRedisClient = func(opts *redis.Options) *redis.Client {
	return redis.NewClient(opts)
}

var pingRedis = func(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// ForecastStore keeps the most recent ForecastResult in Redis, where the
// rendering layers (wallpaper, tray, web) read it.
type ForecastStore struct {
	client *redis.Client
}

// NewForecastStore connects to Redis at the given address or redis:// URL
// and verifies the connection.
func NewForecastStore(ctx context.Context, addr string) (*ForecastStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = "localhost:6379"
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &ForecastStore{client: client}, nil
}

// Publish overwrites the latest forecast snapshot.
func (s *ForecastStore) Publish(ctx context.Context, result domain.ForecastResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}
	if err := s.client.Set(ctx, latestForecastKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("store forecast: %w", err)
	}
	return nil
}

// Latest returns the most recently published forecast.
func (s *ForecastStore) Latest(ctx context.Context) (domain.ForecastResult, error) {
	var result domain.ForecastResult
	payload, err := s.client.Get(ctx, latestForecastKey).Bytes()
	if err != nil {
		return result, fmt.Errorf("load forecast: %w", err)
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return result, fmt.Errorf("parse forecast: %w", err)
	}
	return result, nil
}

// Close releases the underlying connection.
func (s *ForecastStore) Close() error {
	return s.client.Close()
}
