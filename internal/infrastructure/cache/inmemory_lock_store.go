// Package cache holds the key stores shared between requests: the in-memory
// and Redis implementations of the unit transition lock.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/estateflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const defaultJanitorInterval = time.Minute

type heldLock struct {
	token   string
	expires time.Time
}

// InMemoryLockStore keeps lock keys in a map with per-key expiry. It only
// guards transitions inside one process.
type InMemoryLockStore struct {
	mu        sync.Mutex
	locks     map[string]heldLock
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryLockStore creates the store and starts a janitor that drops
// expired keys every interval (one minute when interval is zero)
func NewInMemoryLockStore(interval time.Duration) *InMemoryLockStore {
	if interval <= 0 {
		interval = defaultJanitorInterval
	}
	s := &InMemoryLockStore{
		locks: make(map[string]heldLock),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	s.wg.Add(1)
	go s.janitor(interval)
	return s
}

// TryAcquire takes key unless an unexpired holder exists
func (s *InMemoryLockStore) TryAcquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[key]; ok && now.Before(held.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	s.locks[key] = heldLock{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

// Release frees key if it is still held under token
func (s *InMemoryLockStore) Release(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if held, ok := s.locks[key]; ok && held.token == token {
		delete(s.locks, key)
	}
	return nil
}

// Held reports whether key is currently held
func (s *InMemoryLockStore) Held(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.locks[key]
	return ok && s.now().Before(held.expires)
}

// Close stops the janitor
func (s *InMemoryLockStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryLockStore) janitor(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *InMemoryLockStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, held := range s.locks {
		if !now.Before(held.expires) {
			delete(s.locks, k)
		}
	}
}

func (s *InMemoryLockStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

var _ shared.LockStore = (*InMemoryLockStore)(nil)
