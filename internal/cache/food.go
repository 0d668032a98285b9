package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/benvon/food-delivery/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a cached listing lives when no TTL is configured
	DefaultTTL = time.Minute

	keyPrefix     = "food-delivery:foods"
	generationKey = keyPrefix + ":gen"
)

// FoodCache stores food listings keyed by a canonical filter key
type FoodCache interface {
	GetFoods(ctx context.Context, key string) ([]*models.Food, bool, error)
	SetFoods(ctx context.Context, key string, foods []*models.Food) error
	Invalidate(ctx context.Context) error
}

// RedisFoodCache is a FoodCache backed by Redis. Invalidation bumps a generation
// counter that is part of every entry key, so stale entries are never read and
// simply expire.
type RedisFoodCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ FoodCache = (*RedisFoodCache)(nil)

// NewRedisFoodCache connects to redisURL and verifies the connection
func NewRedisFoodCache(redisURL string, ttl time.Duration) (*RedisFoodCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisFoodCache{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *RedisFoodCache) Close() error {
	return c.client.Close()
}

// Ping checks if Redis is reachable
func (c *RedisFoodCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetFoods returns the cached listing for key. The bool is false on a miss.
func (c *RedisFoodCache) GetFoods(ctx context.Context, key string) ([]*models.Food, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached foods: %w", err)
	}

	var foods []*models.Food
	if err := json.Unmarshal(data, &foods); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached foods: %w", err)
	}
	return foods, true, nil
}

// SetFoods stores a listing under key for the cache TTL
func (c *RedisFoodCache) SetFoods(ctx context.Context, key string, foods []*models.Food) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(foods)
	if err != nil {
		return fmt.Errorf("failed to encode foods: %w", err)
	}

	if err := c.client.Set(ctx, entryKey(gen, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache foods: %w", err)
	}
	return nil
}

// Invalidate makes every previously cached listing unreachable
func (c *RedisFoodCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate food cache: %w", err)
	}
	return nil
}

func (c *RedisFoodCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func entryKey(gen int64, key string) string {
	return keyPrefix + ":v" + strconv.FormatInt(gen, 10) + ":" + key
}

// FilterKey returns a canonical key for filter. Tag lists ignore order and
// duplicates but keep letter case, since tag matching in Postgres is exact.
// Search is matched with ILIKE, so its case is folded.
func FilterKey(filter models.FoodFilter) string {
	v := url.Values{}
	if len(filter.Categories) > 0 {
		v.Set("c", canonicalList(filter.Categories))
	}
	if len(filter.Ingredients) > 0 {
		v.Set("i", canonicalList(filter.Ingredients))
	}
	if filter.MinPrice != nil {
		v.Set("min", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		v.Set("max", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Search != "" {
		v.Set("q", strings.ToLower(filter.Search))
	}
	if len(v) == 0 {
		return "all"
	}
	// Encode sorts by key
	return v.Encode()
}

func canonicalList(values []string) string {
	out := slices.Clone(values)
	slices.Sort(out)
	return strings.Join(slices.Compact(out), ",")
}
