package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// memoryCache is a process-local TTL cache.  Expired entries are dropped
// lazily on read and swept opportunistically on write.
type memoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	serializer Serializer
	now        func() time.Time
	group      singleflight.Group
}

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryCache)

// WithMemoryDefaultTTL overrides the TTL applied when Set receives zero.
func WithMemoryDefaultTTL(ttl time.Duration) MemoryOption {
	return func(c *memoryCache) { c.defaultTTL = ttl }
}

// WithMemorySerializer overrides the JSON serializer.
func WithMemorySerializer(s Serializer) MemoryOption {
	return func(c *memoryCache) { c.serializer = s }
}

// WithMemoryClock overrides the time source, for tests.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(c *memoryCache) { c.now = now }
}

// NewMemoryCache returns an in-process Cache with a 5 minute default TTL.
func NewMemoryCache(opts ...MemoryOption) Cache {
	c := &memoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: 5 * time.Minute,
		serializer: NewJSONSerializer(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return ErrCacheMiss
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return ErrCacheMiss
	}
	if err := c.serializer.Unmarshal(e.data, dest); err != nil {
		return ErrSerializationFailed
	}
	return nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return ErrSerializationFailed
	}

	var expires time.Time
	if ttl > 0 {
		expires = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.sweepLocked()
	c.entries[key] = memoryEntry{data: data, expiresAt: expires}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if err != ErrCacheMiss {
		return err
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, loaded, ttl); setErr != nil {
			return nil, setErr
		}
		return loaded, nil
	})
	if err != nil {
		return err
	}

	data, err := c.serializer.Marshal(v)
	if err != nil {
		return ErrSerializationFailed
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

// sweepLocked drops up to a handful of expired entries.  Caller must hold
// the write lock.
func (c *memoryCache) sweepLocked() {
	now := c.now()
	checked := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
		checked++
		if checked >= 32 {
			return
		}
	}
}
