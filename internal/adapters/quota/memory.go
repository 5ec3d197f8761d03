package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is a process-local counter for development and tests.
// Counts are lost on restart and not shared between instances.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*counterEntry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type counterEntry struct {
	value     int64
	expiresAt time.Time
}

// NewMemoryCounter starts a janitor that drops expired keys every interval.
func NewMemoryCounter(interval time.Duration) *MemoryCounter {
	c := &MemoryCounter{
		entries: make(map[string]*counterEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.cleanup(interval)
	return c
}

func (c *MemoryCounter) Get(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return 0, nil
	}
	return e.value, nil
}

func (c *MemoryCounter) Increment(_ context.Context, key string, expireAt time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		e = &counterEntry{}
		c.entries[key] = e
	}
	e.value++
	e.expiresAt = expireAt
	return e.value, nil
}

// Close stops the janitor.
func (c *MemoryCounter) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *MemoryCounter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
