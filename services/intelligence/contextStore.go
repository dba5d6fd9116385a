package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"evcare/models"

	"github.com/go-redis/redis/v8"
)

const predictionCachePrefix = "prediction:latest:"

// RedisPredictionCache keeps the latest prediction per center hot so the
// dashboard does not hit Mongo (or Gemini) on every load.
type RedisPredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPredictionCache(client *redis.Client, ttl time.Duration) *RedisPredictionCache {
	return &RedisPredictionCache{client: client, ttl: ttl}
}

func (s *RedisPredictionCache) Get(ctx context.Context, centerID string) (*models.InventoryPrediction, error) {
	key := predictionCachePrefix + centerID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var prediction models.InventoryPrediction
	if err := json.Unmarshal([]byte(data), &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

func (s *RedisPredictionCache) Set(ctx context.Context, centerID string, prediction *models.InventoryPrediction) error {
	key := predictionCachePrefix + centerID
	b, err := json.Marshal(prediction)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisPredictionCache) Clear(ctx context.Context, centerID string) error {
	key := predictionCachePrefix + centerID
	return s.client.Del(ctx, key).Err()
}
