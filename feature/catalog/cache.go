package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const cacheKey = "snapshot"

// Cache holds the current catalog snapshot for a TTL. Catalogs only change
// through an import, which invalidates the cache.
type Cache struct {
	db  *gorm.DB
	ttl time.Duration

	mu    sync.RWMutex
	snap  *Snapshot
	built time.Time
	sf    singleflight.Group

	now func() time.Time
}

// NewCache creates a snapshot cache. A zero TTL disables caching.
func NewCache(db *gorm.DB, ttl time.Duration) *Cache {
	return &Cache{db: db, ttl: ttl, now: time.Now}
}

func (c *Cache) fresh() (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil || c.ttl == 0 {
		return nil, false
	}
	if c.now().Sub(c.built) > c.ttl {
		return nil, false
	}
	return c.snap, true
}

// Get returns the cached snapshot, or loads a new one.
// Concurrent misses share a single load.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if snap, ok := c.fresh(); ok {
		return snap, nil
	}

	result, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if snap, ok := c.fresh(); ok {
			return snap, nil
		}

		snap, err := LoadSnapshot(ctx, c.db)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.snap = snap
		c.built = c.now()
		c.mu.Unlock()

		return snap, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
