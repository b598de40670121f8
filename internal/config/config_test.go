package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[admin]
api_key = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 14, cfg.Schedule.LookaheadDays)
	assert.Equal(t, 9, cfg.Schedule.OpenHour)
	assert.Equal(t, 17, cfg.Schedule.CloseHour)
	assert.Equal(t, SlotLockDriverLocal, cfg.SlotLock.Driver)

	pricing, err := cfg.Pricing.Pricing()
	require.NoError(t, err)
	assert.True(t, pricing.BusinessPriceMultiplier.Equal(decimal.RequireFromString("1.2")))
	assert.Equal(t, 1.5, pricing.BusinessDurationMultiplier)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
user = "booking"
password = "from-file"
dbname = "sanitation"

[admin]
api_key = "from-file"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("ADMIN_API_KEY", "admin-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "admin-env", cfg.Admin.APIKey)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
	assert.Contains(t, cfg.Database.DSN(), "dbname=sanitation")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("broken toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[server\nhttp_port = "))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Storage.Driver = StorageDriverMemory
		cfg.Admin.APIKey = "secret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown storage", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"postgres without db", func(c *Config) { c.Storage.Driver = StorageDriverPostgres }},
		{"bad timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
		{"lookahead over max", func(c *Config) { c.Schedule.LookaheadDays = 120 }},
		{"inverted hours", func(c *Config) { c.Schedule.OpenHour = 18 }},
		{"bad price multiplier", func(c *Config) { c.Pricing.BusinessPriceMultiplier = "x1.2" }},
		{"zero duration multiplier", func(c *Config) { c.Pricing.BusinessDurationMultiplier = 0 }},
		{"no admin key", func(c *Config) { c.Admin.APIKey = "" }},
		{"redis without addr", func(c *Config) { c.SlotLock.Driver = SlotLockDriverRedis }},
		{"events without url", func(c *Config) { c.Events.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
