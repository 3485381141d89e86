package task

import (
	"sync"
	"time"
)

// ==================== cooldown ====================

// cooldown admits one run per key per interval.
type cooldown struct {
	locks sync.Map // key -> *cooldownEntry
	now   func() time.Time
}

type cooldownEntry struct {
	mu       sync.Mutex
	lastTime time.Time
}

func newCooldown() *cooldown {
	return &cooldown{now: time.Now}
}

// allow records a run for key and returns 0, or returns how long the caller
// still has to wait.
func (c *cooldown) allow(key string, interval time.Duration) time.Duration {
	actual, _ := c.locks.LoadOrStore(key, &cooldownEntry{})
	entry := actual.(*cooldownEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := c.now()
	if elapsed := now.Sub(entry.lastTime); !entry.lastTime.IsZero() && elapsed < interval {
		return interval - elapsed
	}
	entry.lastTime = now
	return 0
}

func (c *cooldown) reset(key string) {
	c.locks.Delete(key)
}
