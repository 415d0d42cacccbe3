package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// BalanceCache holds recently derived point balances. It is a read-side
// shortcut only; writers invalidate, spenders always recompute.
//
// Fills are generation checked: a reader takes Generation before it reads
// the ledger and passes it to Set, and any Invalidate in between makes the
// Set a no-op.
type BalanceCache struct {
	cache *cache.Cache

	mu          sync.Mutex
	generations map[string]uint64
	next        uint64
}

func NewBalanceCache(ttl time.Duration) *BalanceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BalanceCache{
		cache:       cache.New(ttl, 2*ttl),
		generations: make(map[string]uint64),
	}
}

func (c *BalanceCache) Get(userPublicID string) (int64, bool) {
	if x, found := c.cache.Get(userPublicID); found {
		return x.(int64), true
	}
	return 0, false
}

func (c *BalanceCache) Generation(userPublicID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userPublicID]
}

// Set stores balance only if no Invalidate ran since generation was taken.
func (c *BalanceCache) Set(userPublicID string, generation uint64, balance int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userPublicID] != generation {
		return false
	}
	c.cache.Set(userPublicID, balance, cache.DefaultExpiration)
	return true
}

func (c *BalanceCache) Invalidate(userPublicID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// generations only grow, so a stale reader can never match again
	c.next++
	c.generations[userPublicID] = c.next
	c.cache.Delete(userPublicID)
}
