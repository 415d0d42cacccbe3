package lock

import "context"

// Release frees a held lock. Calling it more than once is a no-op.
type Release func()

// Locker serializes work on a key, such as a sponsor's point balance or a
// featured record being captured.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}
