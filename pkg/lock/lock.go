package lock

import (
	"context"
	"time"
)

// Locker is a keyed mutual-exclusion lease. TryAcquire never blocks: it either
// claims the key until the TTL expires or reports that someone else holds it.
// The returned token must be passed back to Release so a holder cannot release
// a lease it lost to expiry.
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key string, token string) error
}
