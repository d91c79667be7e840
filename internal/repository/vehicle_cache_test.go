package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/traffic_review/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	cache := NewVehicleCache(client, time.Minute)
	ctx := context.Background()

	// Промах
	got, err := cache.Get(ctx, "ABC123")
	require.NoError(t, err)
	assert.Nil(t, got)

	record := &models.VehicleRecord{
		Plate:            "ABC123",
		Make:             "Toyota",
		Model:            "Camry",
		Color:            "Silver",
		RegistrationDate: "2020-05-15",
		ExpirationDate:   "2025-05-15",
		OwnerName:        "John Doe",
		Address:          "123 Main St, Anytown, ST 12345",
	}
	require.NoError(t, cache.Set(ctx, record))
	assert.True(t, srv.Exists("vehicle:ABC123"))
	assert.Equal(t, time.Minute, srv.TTL("vehicle:ABC123"))

	got, err = cache.Get(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, record, got)

	// Запись истекает по TTL
	srv.FastForward(2 * time.Minute)
	got, err = cache.Get(ctx, "ABC123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVehicleCache_CorruptValue(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	require.NoError(t, srv.Set("vehicle:BAD", "not-json"))

	_, err := NewVehicleCache(client, time.Minute).Get(context.Background(), "BAD")
	assert.ErrorContains(t, err, "failed to unmarshal vehicle from cache")
}

func TestVehicleCache_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	_, err := NewVehicleCache(client, time.Minute).Get(context.Background(), "ABC")
	assert.ErrorContains(t, err, "failed to get vehicle from cache")
}
