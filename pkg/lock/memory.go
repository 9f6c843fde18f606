package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type lease struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker is an in-process Locker for single-node deployments and tests.
type MemoryLocker struct {
	mu     sync.Mutex
	leases map[string]lease
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{leases: make(map[string]lease)}
}

func (l *MemoryLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if held, ok := l.leases[key]; ok && now.Before(held.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.leases[key] = lease{token: token, expiresAt: now.Add(ttl)}

	return token, true, nil
}

func (l *MemoryLocker) Release(ctx context.Context, key string, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.leases[key]; ok && held.token == token {
		delete(l.leases, key)
	}

	return nil
}
