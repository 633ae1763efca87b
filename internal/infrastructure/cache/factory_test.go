package cache

import (
	"context"
	"testing"

	"github.com/estateflow/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLockStoreFactory_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("redis disabled", func(t *testing.T) {
		store, err := NewLockStoreFactory(config.RedisConfig{Enabled: false}).Create(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryLockStore{}, store)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis falls back", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		store, err := NewLockStoreFactory(unreachable, WithLogger(zap.New(core))).Create(ctx)
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &InMemoryLockStore{}, store)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("unreachable redis without fallback", func(t *testing.T) {
		_, err := NewLockStoreFactory(unreachable, WithInMemoryFallback(false)).Create(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})
}
