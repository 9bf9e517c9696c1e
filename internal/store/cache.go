// Package store caches metadata lookups using an LRU cache and a Bloom filter of missing references.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"copytext/internal/core"
	"copytext/pkg/spuri"
)

const missingFalsePositiveRate = 0.001

type entry[T any] struct {
	value  T
	stored time.Time
}

// LookupCache wraps a MetadataLookup and remembers entities, artist lists
// and references the service reported missing. Track listings are never
// cached.
type LookupCache struct {
	inner  core.MetadataLookup
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	entities *lru.Cache[string, entry[*core.Entity]]
	artists  *lru.Cache[string, entry[[]string]]

	mutex   sync.RWMutex
	missing *lru.Cache[string, time.Time]
	bloom   *bloom.BloomFilter
	size    int
}

// NewLookupCache creates a cache holding up to size entries of each kind.
// A zero ttl keeps entries until they are evicted.
func NewLookupCache(inner core.MetadataLookup, size int, ttl time.Duration, logger *zap.Logger) (*LookupCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}

	entities, err := lru.New[string, entry[*core.Entity]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create entity cache: %w", err)
	}
	artists, err := lru.New[string, entry[[]string]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create artist cache: %w", err)
	}
	missing, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create missing cache: %w", err)
	}

	return &LookupCache{
		inner:    inner,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		entities: entities,
		artists:  artists,
		missing:  missing,
		bloom:    bloom.NewWithEstimates(uint(size), missingFalsePositiveRate),
		size:     size,
	}, nil
}

func (c *LookupCache) fresh(stored time.Time) bool {
	return c.ttl <= 0 || c.now().Sub(stored) < c.ttl
}

// Get implements core.MetadataLookup.
func (c *LookupCache) Get(ctx context.Context, ref spuri.Reference) (*core.Entity, error) {
	key := ref.URI()

	if e, ok := c.entities.Get(key); ok && c.fresh(e.stored) {
		c.logger.Debug("Entity cache hit", zap.String("uri", key))
		return e.value, nil
	}
	if c.isMissing(key) {
		c.logger.Debug("Missing reference cache hit", zap.String("uri", key))
		return nil, nil
	}

	entity, err := c.inner.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	if entity == nil {
		c.markMissing(key)
		return nil, nil
	}
	c.entities.Add(key, entry[*core.Entity]{value: entity, stored: c.now()})
	return entity, nil
}

// TrackArtists implements core.MetadataLookup.
func (c *LookupCache) TrackArtists(ctx context.Context, ref spuri.Reference) ([]string, error) {
	key := ref.URI()

	if e, ok := c.artists.Get(key); ok && c.fresh(e.stored) {
		return e.value, nil
	}

	artists, err := c.inner.TrackArtists(ctx, ref)
	if err != nil {
		return nil, err
	}
	c.artists.Add(key, entry[[]string]{value: artists, stored: c.now()})
	return artists, nil
}

// ListTracks implements core.MetadataLookup.
func (c *LookupCache) ListTracks(ctx context.Context, ref spuri.Reference, name string) ([]core.ListedTrack, error) {
	return c.inner.ListTracks(ctx, ref, name)
}

func (c *LookupCache) isMissing(key string) bool {
	c.mutex.RLock()
	if !c.bloom.TestString(key) {
		c.mutex.RUnlock()
		return false
	}
	stored, ok := c.missing.Get(key)
	c.mutex.RUnlock()

	if !ok {
		return false
	}
	if c.fresh(stored) {
		return true
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.missing.Remove(key)
	// The filter cannot forget single keys; reset it once nothing is left
	if c.missing.Len() == 0 {
		c.bloom.ClearAll()
	}
	return false
}

func (c *LookupCache) markMissing(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.missing.Add(key, c.now())
	c.bloom.AddString(key)
}

// Len returns the number of cached entities.
func (c *LookupCache) Len() int {
	return c.entities.Len()
}

// Purge drops every cached entry.
func (c *LookupCache) Purge() {
	c.entities.Purge()
	c.artists.Purge()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.missing.Purge()
	c.bloom = bloom.NewWithEstimates(uint(c.size), missingFalsePositiveRate)
}
