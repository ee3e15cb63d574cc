package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a Locker.
type UnlockFunc func(ctx context.Context) error

// Locker provides mutual exclusion per key (an automaton name).
type Locker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// Distributed implementations let the lock expire after ttl.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
