// Package querycache provides a small read-through cache for remote fetches:
// entries stay fresh for a configured staleness window, concurrent fetches of
// the same key are collapsed into one, and scheduling can be gated on a
// prerequisite such as an authenticated user id.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrDisabled is returned when a fetch would be needed but the caller's
// prerequisite gate is closed and no cached value exists.
var ErrDisabled = errors.New("querycache: fetch disabled")

// Key identifies a cached fetch. Owner is the identity the data belongs to
// (typically the authenticated user id), so that an owner's entries can be
// purged together on session teardown.
type Key struct {
	Resource string
	ID       int64
	Owner    int64
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%d", k.Resource, k.ID, k.Owner)
}

// Options controls one Get call.
type Options struct {
	// Enabled gates scheduling: when false, no fetch runs. A cached value
	// is still served if one exists.
	Enabled bool
	// StaleFor is the staleness window. An entry younger than this is
	// served without fetching; an older one triggers exactly one refetch.
	StaleFor time.Duration
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache is a keyed read-through cache. Values for a key are only ever
// replaced by a completed fetch for that same key, and at most one fetch per
// key is in flight at any time.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[Key]entry[V]
	epoch   uint64
	group   singleflight.Group
	now     func() time.Time
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[Key]entry[V]),
		now:     time.Now,
	}
}

// Get returns the value for key, fetching when the entry is absent or older
// than opts.StaleFor. Concurrent callers of the same key share a single
// in-flight fetch. When opts.Enabled is false no fetch is scheduled: a
// cached value (fresh or stale) is served when present, otherwise
// ErrDisabled is returned. A prerequisite flipping from absent to present
// therefore triggers exactly one fetch on the next access.
//
// A fetch that was in flight when Invalidate, PurgeOwner or Purge ran does
// not store its result: the epoch advanced underneath it, so writing the
// entry would resurrect data the purge just dropped.
func (c *Cache[V]) Get(ctx context.Context, key Key, fetch func(context.Context) (V, error), opts Options) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < opts.StaleFor {
		c.mu.Unlock()
		return e.value, nil
	}
	if !opts.Enabled {
		if e, ok := c.entries[key]; ok {
			// A stale value beats none while scheduling is gated.
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()
		var zero V
		return zero, ErrDisabled
	}
	epoch := c.epoch
	c.mu.Unlock()

	value, err, _ := c.group.Do(key.String(), func() (any, error) {
		fetched, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		c.mu.Lock()
		if c.epoch == epoch {
			c.entries[key] = entry[V]{value: fetched, fetchedAt: c.now()}
		}
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return value.(V), nil
}

// Invalidate drops a single entry and discards any in-flight fetch result.
func (c *Cache[V]) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	delete(c.entries, key)
}

// PurgeOwner drops every entry belonging to one owner and discards any
// in-flight fetch result.
func (c *Cache[V]) PurgeOwner(owner int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for key := range c.entries {
		if key.Owner == owner {
			delete(c.entries, key)
		}
	}
}

// Purge drops all entries and discards any in-flight fetch result.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.entries = make(map[Key]entry[V])
}
