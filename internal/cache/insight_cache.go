package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formforge/internal/model"
)

// InsightCache handles Redis operations for computed insight and
// optimization results. The cache is advisory; callers treat every error as
// a miss.
type InsightCache interface {
	GetInsights(ctx context.Context, formID string) (*model.InsightResult, error)
	SetInsights(ctx context.Context, formID string, result *model.InsightResult) error

	GetOptimization(ctx context.Context, formID string) (*model.OptimizationResult, error)
	SetOptimization(ctx context.Context, formID string, result *model.OptimizationResult) error
}

type insightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates a new insight cache
func NewInsightCache(client *redis.Client) InsightCache {
	return &insightCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

// Key helpers
func (c *insightCache) insightsKey(formID string) string {
	return fmt.Sprintf("form:%s:insights", formID)
}

func (c *insightCache) optimizationKey(formID string) string {
	return fmt.Sprintf("form:%s:optimization", formID)
}

func (c *insightCache) GetInsights(ctx context.Context, formID string) (*model.InsightResult, error) {
	data, err := c.client.Get(ctx, c.insightsKey(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.InsightResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *insightCache) SetInsights(ctx context.Context, formID string, result *model.InsightResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.insightsKey(formID), data, c.ttl).Err()
}

func (c *insightCache) GetOptimization(ctx context.Context, formID string) (*model.OptimizationResult, error) {
	data, err := c.client.Get(ctx, c.optimizationKey(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.OptimizationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *insightCache) SetOptimization(ctx context.Context, formID string, result *model.OptimizationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.optimizationKey(formID), data, c.ttl).Err()
}
