package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "estate-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "estate", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.False(t, cfg.Redis.Enabled)
		assert.True(t, cfg.Board.LockEnabled)
		assert.Equal(t, 30*time.Second, cfg.Board.LockTTL)
		assert.Equal(t, 20, cfg.Board.HistoryDefaultLimit)
		assert.Equal(t, 100, cfg.Board.HistoryMaxLimit)
		assert.Equal(t, "@hourly", cfg.Audit.CronSchedule)
		assert.Equal(t, "estate-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with ESTATE prefix", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ESTATE_APP_PORT", "9000")
		t.Setenv("ESTATE_DATABASE_HOST", "db.internal")
		t.Setenv("ESTATE_DATABASE_PORT", "5433")
		t.Setenv("ESTATE_REDIS_ENABLED", "true")
		t.Setenv("ESTATE_BOARD_LOCK_TTL", "45s")
		t.Setenv("ESTATE_BOARD_LOCK_ENABLED", "false")
		t.Setenv("ESTATE_BOARD_HISTORY_MAX_LIMIT", "250")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Board.LockEnabled)
		assert.Equal(t, 45*time.Second, cfg.Board.LockTTL)
		assert.Equal(t, 250, cfg.Board.HistoryMaxLimit)
	})

	t.Run("rejects weak production settings", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ESTATE_APP_ENV", "production")
		t.Setenv("ESTATE_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("idle conns above open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = 50
		assert.ErrorContains(t, cfg.validate(), "max_idle_conns")
	})

	t.Run("history default above max", func(t *testing.T) {
		cfg := valid()
		cfg.Board.HistoryDefaultLimit = 500
		assert.ErrorContains(t, cfg.validate(), "history_default_limit")
	})

	t.Run("lock ttl too short", func(t *testing.T) {
		cfg := valid()
		cfg.Board.LockTTL = 100 * time.Millisecond
		assert.ErrorContains(t, cfg.validate(), "lock_ttl")
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.ErrorContains(t, cfg.validate(), "sampling_ratio")
	})

	t.Run("production wildcard cors", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.ErrorContains(t, cfg.validate(), "cors_allow_origins")
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "estate", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/estate?sslmode=disable", d.DSN())
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
