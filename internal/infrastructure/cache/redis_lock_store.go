package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockKeyPrefix = "estate:lock:"

// releaseScript deletes the key only while it still carries the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockStore implements LockStore with SET NX PX, shared by every server instance
type RedisLockStore struct {
	client    *redis.Client
	keyPrefix string
	ownClient bool
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisLockStore connects to Redis and verifies the connection
func NewRedisLockStore(ctx context.Context, cfg RedisConfig) (*RedisLockStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	s := NewRedisLockStoreWithClient(client, "")
	s.ownClient = true
	return s, nil
}

// NewRedisLockStoreWithClient wraps an existing client. Close does not close a client passed in here.
func NewRedisLockStoreWithClient(client *redis.Client, keyPrefix string) *RedisLockStore {
	if keyPrefix == "" {
		keyPrefix = defaultLockKeyPrefix
	}
	return &RedisLockStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// TryAcquire sets key with a fresh token if it does not exist
func (s *RedisLockStore) TryAcquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release deletes key if it still carries token
func (s *RedisLockStore) Release(ctx context.Context, key, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, s.client, []string{s.keyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}

// Ping checks that Redis is reachable
func (s *RedisLockStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client when the store created it
func (s *RedisLockStore) Close() error {
	if !s.ownClient {
		return nil
	}
	return s.client.Close()
}

var _ shared.LockStore = (*RedisLockStore)(nil)
