package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("API_KEYS", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 500*time.Millisecond, cfg.DMVLatency)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.Equal(t, "demo@traffic.com", cfg.DemoReviewerEmail)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.APIKeys)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("API_KEYS", " key-1, ,key-2 ")
	t.Setenv("DMV_LATENCY", "10ms")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("WEBHOOK_MAX_RETRIES", "not-a-number")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.APIKeys)
	assert.Equal(t, 10*time.Millisecond, cfg.DMVLatency)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.True(t, cfg.RedisEnabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "memory store",
			cfg:  Config{StoreDriver: StoreMemory, DemoReviewerEmail: "a@b.c", DemoReviewerPassword: "x"},
		},
		{
			name:    "postgres without url",
			cfg:     Config{StoreDriver: StorePostgres, DemoReviewerEmail: "a@b.c", DemoReviewerPassword: "x"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "unknown driver",
			cfg:     Config{StoreDriver: "mongo", DemoReviewerEmail: "a@b.c", DemoReviewerPassword: "x"},
			wantErr: "unknown STORE_DRIVER",
		},
		{
			name:    "empty demo reviewer",
			cfg:     Config{StoreDriver: StoreMemory},
			wantErr: "DEMO_REVIEWER_EMAIL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
