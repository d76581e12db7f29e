package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryEntries = 256

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local Cache backed by a bounded LRU.
// Counters live outside the LRU so they are never evicted.
type MemoryCache struct {
	entries *lru.Cache[string, entry]
	now     func() time.Time

	mu       sync.Mutex
	counters map[string]int64
}

// NewMemoryCache constructs a MemoryCache holding at most size entries.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = defaultMemoryEntries
	}
	entries, _ := lru.New[string, entry](size)
	return &MemoryCache{
		entries:  entries,
		now:      time.Now,
		counters: make(map[string]int64),
	}
}

func (c *MemoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c.mu.Lock()
	n, isCounter := c.counters[key]
	c.mu.Unlock()
	if isCounter {
		return []byte(strconv.FormatInt(n, 10)), true, nil
	}

	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, e)
	return nil
}

func (c *MemoryCache) Incr(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

var _ Cache = (*MemoryCache)(nil)
