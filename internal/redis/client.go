package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"nimko_store/internal/models"
)

const (
	promoStateKey  = "promo:free_orders_state"
	orderMirrorKey = "orders:mirror"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Promotional counter state: a single key holds the whole serialized state,
// rewritten on every change.

func (c *Client) SavePromoState(state *models.FreeOrdersState) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal promo state: %w", err)
	}

	return c.rdb.Set(ctx, promoStateKey, jsonData, 0).Err()
}

func (c *Client) LoadPromoState() (*models.FreeOrdersState, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, promoStateKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo state: %w", err)
	}

	var state models.FreeOrdersState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal promo state: %w", err)
	}

	return &state, nil
}

// Order mirror: a second key holds the full order list, used as an
// offline/export fallback when the document store is unreachable.

func (c *Client) SaveOrderMirror(orders []models.Order) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal order mirror: %w", err)
	}

	return c.rdb.Set(ctx, orderMirrorKey, jsonData, 0).Err()
}

func (c *Client) LoadOrderMirror() ([]models.Order, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, orderMirrorKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order mirror: %w", err)
	}

	var orders []models.Order
	if err := json.Unmarshal([]byte(val), &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order mirror: %w", err)
	}

	return orders, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
