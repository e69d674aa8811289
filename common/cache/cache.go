/******************************************************************************
 * Copyright (c) 2024-2025 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package cache implements an in-memory key/value store with a per-entry
// time to live. It is used to avoid repeating upstream market data fetches
// and LLM calls for requests that were answered recently.
//
// Expired entries are never returned. They are removed lazily when a read
// finds them stale and periodically by Run, which bounds memory for keys
// that are never read again. Nothing is persisted.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/coinsage/coinsage/common/interfaces"
	"github.com/coinsage/coinsage/common/null"
)

// Make sure Cache implements the interface
var _ interfaces.Cache = (*Cache)(nil)

const DefaultSweepInterval = 60 * time.Second

type Cache struct {
	mu            sync.RWMutex
	items         map[string]cacheItem
	clock         interfaces.Clock
	sweepInterval time.Duration
	logger        interfaces.Logger
	group         singleflight.Group
}

type cacheItem struct {
	value     any
	expiresAt time.Time
}

// Option configures a Cache
type Option func(*Cache)

// WithClock replaces the wall clock, mainly for tests
func WithClock(clock interfaces.Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSweepInterval sets how often Run removes expired entries
func WithSweepInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.sweepInterval = d
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty cache
func New(options ...Option) *Cache {
	c := &Cache{
		items:         make(map[string]cacheItem),
		clock:         SystemClock{},
		sweepInterval: DefaultSweepInterval,
		logger:        null.Logger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Get returns the value stored under key if it has not expired.
// A stale entry found here is evicted.
func (c *Cache) Get(key string) (any, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if now.Before(item.expiresAt) {
		return item.value, true
	}

	// Only delete the entry we saw; a concurrent Set may have replaced it
	c.mu.Lock()
	if current, ok := c.items[key]; ok && current.expiresAt.Equal(item.expiresAt) {
		delete(c.items, key)
	}
	c.mu.Unlock()
	return nil, false
}

// GetString is Get for callers that only ever store strings under key
func (c *Cache) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores value under key for ttl seconds, replacing any existing entry.
// A ttl of zero or less makes the entry immediately expired, so the key
// reads as absent afterwards.
func (c *Cache) Set(key string, value any, ttl int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.items, key)
		return
	}

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: c.clock.Now().Add(time.Duration(ttl) * time.Second),
	}
}

// Fetch returns the cached value for key or calls load to produce it.
// Concurrent misses for the same key share a single load. Errors from load
// are returned to every waiting caller and nothing is stored.
func (c *Cache) Fetch(ctx context.Context, key string, ttl int, load func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		c.logger.Debugf(4401, "cache hit for %s", key)
		return v, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}

	if shared {
		c.logger.Debugf(4402, "shared load for %s", key)
	}
	return v, nil
}

// Delete removes key if present
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}

// Len reports the number of stored entries, including expired entries
// that have not been swept yet
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Sweep removes all expired entries and returns how many were removed
func (c *Cache) Sweep() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Run sweeps expired entries every sweep interval until ctx is cancelled.
// It is intended to run as a goroutine.
func (c *Cache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	c.logger.Infof(4403, "cache sweeper started, interval %s", c.sweepInterval)
	for {
		select {
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Debugf(4404, "cache sweep removed %d entries", n)
			}
		case <-ctx.Done():
			c.logger.Infof(4405, "cache sweeper stopped")
			return
		}
	}
}
