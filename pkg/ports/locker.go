package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock acquired through DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes edits to one document across replicas.
// The history engine performs no locking itself, so hosts that share a
// document between processes must take this lock around every dispatch.
type DistributedLocker interface {
	// Lock blocks until the lock for key (a document ID) is held or ctx is done.
	// The lock expires after ttl if never released.
	// The returned UnlockFunc must be called exactly once.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
