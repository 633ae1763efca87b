package cache

import (
	"context"
	"fmt"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/estateflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LockStoreFactory picks the lock store implementation from configuration
type LockStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LockStoreFactoryOption configures the factory
type LockStoreFactoryOption func(*LockStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LockStoreFactoryOption {
	return func(f *LockStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store. Default is true.
func WithInMemoryFallback(allow bool) LockStoreFactoryOption {
	return func(f *LockStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLockStoreFactory creates a new factory
func NewLockStoreFactory(cfg config.RedisConfig, opts ...LockStoreFactoryOption) *LockStoreFactory {
	f := &LockStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis store when redis.enabled is set and reachable, the
// in-memory store otherwise
func (f *LockStoreFactory) Create(ctx context.Context) (shared.LockStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Using in-memory transition lock store")
		return NewInMemoryLockStore(0), nil
	}

	store, err := NewRedisLockStore(ctx, RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis transition lock store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for transition locks but unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory transition locks. "+
		"Overlapping transitions on different instances will not be detected.",
		zap.Error(err),
	)
	return NewInMemoryLockStore(0), nil
}
