package cache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryContextCache keeps general contexts in process memory.
type MemoryContextCache struct {
	cache *cache.Cache
	ttl   time.Duration
	now   Clock
}

func NewMemoryContextCache(ttl time.Duration) *MemoryContextCache {
	return NewMemoryContextCacheWithClock(ttl, time.Now)
}

func NewMemoryContextCacheWithClock(ttl time.Duration, now Clock) *MemoryContextCache {
	// go-cache only evicts; freshness is decided against the injected clock on read.
	c := cache.New(cache.NoExpiration, 2*ttl)
	return &MemoryContextCache{
		cache: c,
		ttl:   ttl,
		now:   now,
	}
}

func (r *MemoryContextCache) Get(_ context.Context, userID string) (string, bool) {
	x, found := r.cache.Get(userID)
	if !found {
		return "", false
	}
	entry := x.(ContextEntry)
	if !entry.fresh(r.now(), r.ttl) {
		r.cache.Delete(userID)
		return "", false
	}
	return entry.ContextText, true
}

func (r *MemoryContextCache) Set(_ context.Context, userID, contextText string) {
	r.cache.Set(userID, ContextEntry{
		UserId:      userID,
		ContextText: contextText,
		CreatedAt:   r.now(),
	}, r.ttl*2)
}

func (r *MemoryContextCache) Delete(userID string) {
	r.cache.Delete(userID)
}
