package config

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("ATLASDB_URL", "")

	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "mongodb://127.0.0.1:27017/wanderlust", cfg.MongoURI)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTouchAfter)
	assert.Equal(t, "wanderlust_DEV", cfg.ImageFolder)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "3000")
	t.Setenv("MONGO_URI", "")
	t.Setenv("ATLASDB_URL", "mongodb+srv://atlas.example.net/wanderlust")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("SMTP_EMAIL", "noreply@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, "mongodb+srv://atlas.example.net/wanderlust", cfg.MongoURI)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.MongoTransactions)
	assert.True(t, cfg.SMTPEnabled())
}

func TestValidate(t *testing.T) {
	base := Config{
		HTTPPort:      "8080",
		StoreDriver:   "mongo",
		MongoDatabase: "wanderlust",
		SessionSecret: "s3cr3t",
		SessionTTL:    time.Hour,
		MaxUploadMB:   1,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.StoreDriver = "postgres" }},
		{"missing database", func(c *Config) { c.MongoDatabase = "" }},
		{"empty secret", func(c *Config) { c.SessionSecret = "" }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"zero upload", func(c *Config) { c.MaxUploadMB = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	mem := base
	mem.StoreDriver = "memory"
	mem.MongoDatabase = ""
	assert.NoError(t, mem.Validate())
}
