package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBalanceCache(t *testing.T) {
	c := NewBalanceCache(time.Minute)

	_, ok := c.Get("u1")
	assert.False(t, ok)

	assert.True(t, c.Set("u1", c.Generation("u1"), 70))
	got, ok := c.Get("u1")
	assert.True(t, ok)
	assert.Equal(t, int64(70), got)

	c.Invalidate("u1")
	_, ok = c.Get("u1")
	assert.False(t, ok)
}

func TestBalanceCacheDropsFillAfterInvalidate(t *testing.T) {
	c := NewBalanceCache(time.Minute)

	gen := c.Generation("u1")
	c.Invalidate("u1")
	assert.False(t, c.Set("u1", gen, 10))
	_, ok := c.Get("u1")
	assert.False(t, ok)

	// other users keep their own generation
	assert.True(t, c.Set("u2", c.Generation("u2"), 3))

	gen = c.Generation("u1")
	assert.True(t, c.Set("u1", gen, 15))
	got, _ := c.Get("u1")
	assert.Equal(t, int64(15), got)
}

func TestBalanceCacheExpires(t *testing.T) {
	c := NewBalanceCache(20 * time.Millisecond)
	c.Set("u1", c.Generation("u1"), 5)
	time.Sleep(50 * time.Millisecond)
	_, ok := c.Get("u1")
	assert.False(t, ok)
}
