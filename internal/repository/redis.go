package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Git-LeAmaral/reserva-praia/internal/config"
	"github.com/Git-LeAmaral/reserva-praia/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisSelectionRepository keeps in-progress selections in Redis so an
// interrupted session can resume. The TTL doubles as the abandonment
// policy: a selection nobody finishes simply expires.
type RedisSelectionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisSelectionRepository(client *redis.Client, ttl time.Duration) *RedisSelectionRepository {
	return &RedisSelectionRepository{client: client, ttl: ttl}
}

func selectionKey(session string) string {
	return fmt.Sprintf("selection:%s", session)
}

func (r *RedisSelectionRepository) GetSelection(ctx context.Context, session string) (*models.SelectionRange, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, selectionKey(session)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get selection from redis: %w", err)
	}

	var sel models.SelectionRange
	if err := json.Unmarshal([]byte(val), &sel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return &sel, nil
}

func (r *RedisSelectionRepository) SetSelection(ctx context.Context, session string, sel models.SelectionRange) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := r.client.Set(ctx, selectionKey(session), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set selection in redis: %w", err)
	}
	return nil
}

func (r *RedisSelectionRepository) ClearSelection(ctx context.Context, session string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, selectionKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to delete selection from redis: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
