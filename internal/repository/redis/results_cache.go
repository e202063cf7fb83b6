package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketSearch/domain"
	"marketSearch/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ResultsCacheRepository stores ranked result lists with a short TTL. Cache
// misses and redis failures are treated alike: the caller recomputes.
type ResultsCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultsCacheRepository(client *redis.Client, ttl time.Duration) *ResultsCacheRepository {
	return &ResultsCacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *ResultsCacheRepository) Get(ctx context.Context, key string) ([]domain.ScoredProduct, bool) {
	val, err := r.client.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("results_cache_get_failed", "key", key, "error", err)
		}
		return nil, false
	}

	var results []domain.ScoredProduct
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		logger.Warn("results_cache_decode_failed", "key", key, "error", err)
		return nil, false
	}

	return results, true
}

func (r *ResultsCacheRepository) Set(ctx context.Context, key string, results []domain.ScoredProduct) {
	data, err := json.Marshal(results)
	if err != nil {
		logger.Warn("results_cache_encode_failed", "key", key, "error", err)
		return
	}

	if err := r.client.Set(ctx, cacheKey(key), data, r.ttl).Err(); err != nil {
		logger.Warn("results_cache_set_failed", "key", key, "error", err)
	}
}

func cacheKey(key string) string {
	return fmt.Sprintf("results:%s", key)
}
