package store

import (
	"context"
	"time"
)

// UnlockFunc releases a lock acquired via Locker.Lock.
type UnlockFunc func(ctx context.Context) error

// Locker provides distributed concurrency control over a search-session
// id, grounded on the teacher's pkg/ports.DistributedLocker. store/redis
// implements it; no cmd/pocl command acquires it, so `pocl resume` runs
// without a lock.
type Locker interface {
	// Lock blocks until the lock for key is acquired, ctx is canceled, or
	// acquisition otherwise fails. The returned UnlockFunc must be called
	// to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
