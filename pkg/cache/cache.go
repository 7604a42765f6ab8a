package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per cached resource
const (
	TTLTemplates = 5 * time.Minute  // template listings (change on edit)
	TTLAutoFill  = 1 * time.Minute  // CRM auto-fill maps (short, data edited often)
	TTLCatalog   = 30 * time.Minute // placeholder catalog (static per release)
	TTLStats     = 2 * time.Minute  // document statistics
	TTLDefault   = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixTemplates = "templates:"
	PrefixAutoFill  = "autofill:"
	PrefixCatalog   = "catalog:"
	PrefixStats     = "docstats:"
)

// Service Redis cache service interface
type Service interface {
	// Generic operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Template listing cache (per user and filter)
	GetTemplates(ctx context.Context, userID, filterKey string) ([]byte, error)
	SetTemplates(ctx context.Context, userID, filterKey string, data interface{}) error
	InvalidateTemplates(ctx context.Context, userID string) error

	// Auto-fill cache (per user and client/case pair)
	GetAutoFill(ctx context.Context, userID, clientID, caseID string) (map[string]string, error)
	SetAutoFill(ctx context.Context, userID, clientID, caseID string, data map[string]string) error
	InvalidateAutoFill(ctx context.Context, userID, clientID, caseID string) error

	// Document stats cache (per user)
	GetStats(ctx context.Context, userID string) ([]byte, error)
	SetStats(ctx context.Context, userID string, data interface{}) error
	InvalidateStats(ctx context.Context, userID string) error

	// Utilities
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether Redis is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a value from cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set writes a value to cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes cache entries
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key is cached
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// ========================================
// Template listing cache
// ========================================

func (c *redisCache) templatesKey(userID, filterKey string) string {
	return PrefixTemplates + userID + ":" + filterKey
}

func (c *redisCache) GetTemplates(ctx context.Context, userID, filterKey string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.templatesKey(userID, filterKey)).Bytes()
}

func (c *redisCache) SetTemplates(ctx context.Context, userID, filterKey string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.templatesKey(userID, filterKey), jsonData, TTLTemplates).Err()
}

// InvalidateTemplates drops every cached listing for the user
func (c *redisCache) InvalidateTemplates(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, PrefixTemplates+userID+":*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	return iter.Err()
}

// ========================================
// Auto-fill cache
// ========================================

func (c *redisCache) autoFillKey(userID, clientID, caseID string) string {
	return PrefixAutoFill + userID + ":" + clientID + ":" + caseID
}

func (c *redisCache) GetAutoFill(ctx context.Context, userID, clientID, caseID string) (map[string]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	data, err := c.client.Get(ctx, c.autoFillKey(userID, clientID, caseID)).Bytes()
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *redisCache) SetAutoFill(ctx context.Context, userID, clientID, caseID string, data map[string]string) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.autoFillKey(userID, clientID, caseID), jsonData, TTLAutoFill).Err()
}

func (c *redisCache) InvalidateAutoFill(ctx context.Context, userID, clientID, caseID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.autoFillKey(userID, clientID, caseID)).Err()
}

// ========================================
// Document stats cache
// ========================================

func (c *redisCache) statsKey(userID string) string {
	return PrefixStats + userID
}

func (c *redisCache) GetStats(ctx context.Context, userID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.statsKey(userID)).Bytes()
}

func (c *redisCache) SetStats(ctx context.Context, userID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.statsKey(userID), jsonData, TTLStats).Err()
}

func (c *redisCache) InvalidateStats(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.statsKey(userID)).Err()
}
