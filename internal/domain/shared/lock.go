package shared

import (
	"context"
	"time"
)

// LockStore grants short-lived exclusive keys. It guards a unit while a status
// change for it is in flight so that a second, overlapping change is rejected
// instead of racing the first.
type LockStore interface {
	// TryAcquire takes key for ttl and returns the holder's token. ok is false
	// when the key is already held.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Release frees key only while it is still held under token. Releasing a
	// key that expired or passed to another holder is not an error.
	Release(ctx context.Context, key, token string) error

	// Close releases resources held by the store
	Close() error
}

// LockConfig holds configuration for transition locks
type LockConfig struct {
	// TTL bounds how long a crashed holder can block a unit
	TTL time.Duration
}

// DefaultLockConfig returns the default lock configuration
func DefaultLockConfig() LockConfig {
	return LockConfig{
		TTL: 30 * time.Second,
	}
}
