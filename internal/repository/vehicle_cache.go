package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/traffic_review/internal/models"
)

const vehicleKeyPrefix = "vehicle:"

// VehicleCache кэширует ответы DMV в Redis
type VehicleCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewVehicleCache(redisClient *redis.Client, ttl time.Duration) *VehicleCache {
	return &VehicleCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Get пытается получить запись о транспортном средстве из Redis. Промах возвращает nil, nil.
func (c *VehicleCache) Get(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	val, err := c.redisClient.Get(ctx, vehicleKeyPrefix+plate).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle from cache: %w", err)
	}

	record := &models.VehicleRecord{}
	if err := json.Unmarshal(val, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle from cache: %w", err)
	}
	return record, nil
}

// Set сохраняет запись в Redis с TTL
func (c *VehicleCache) Set(ctx context.Context, record *models.VehicleRecord) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, vehicleKeyPrefix+record.Plate, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set vehicle in cache: %w", err)
	}
	return nil
}
