// Package cache is a Redis-backed repository for generated campaign results.
// Identical requests within the TTL get the cached bundle back instead of
// re-running the pipeline. A nil client disables caching without errors.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/adforge/adcopy/internal/models"
)

const (
	// Cache key prefixes
	KeyPrefixCampaign = "campaign:"

	// Default TTL for cached items
	DefaultTTL = 1 * time.Hour
)

// Repository represents a Redis cache repository
type Repository struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewRepository creates a new Redis cache repository. A zero ttl uses the
// default.
func NewRepository(client *redis.Client, ttl time.Duration) *Repository {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Repository{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

// CampaignRecord is the cached payload for one generated campaign: the raw
// bundle together with its validation result, so cache hits return the same
// response shape as fresh generations.
type CampaignRecord struct {
	Bundle     *models.AssetBundle      `json:"bundle"`
	Validation *models.ValidationResult `json:"validation"`
}

// RequestKey derives a stable cache key from the request content.
func RequestKey(req *models.AssetRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	sum := sha256.Sum256(data)
	return KeyPrefixCampaign + fmt.Sprintf("%x", sum[:12]), nil
}

// CacheCampaign stores a campaign record in the cache
func (r *Repository) CacheCampaign(key string, record *CampaignRecord) error {
	if r.client == nil {
		return nil // Skip if Redis is not available
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return r.client.Set(r.ctx, key, data, r.ttl).Err()
}

// GetCampaign retrieves a campaign record from the cache
func (r *Repository) GetCampaign(key string) (*CampaignRecord, error) {
	if r.client == nil {
		return nil, nil
	}

	data, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss, not an error
		}
		return nil, err
	}

	var record CampaignRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

// Invalidate removes a cached result
func (r *Repository) Invalidate(key string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(r.ctx, key).Err()
}
