package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUWithTTL é um cache LRU com expiração por entrada, seguro para uso concorrente
type LRUWithTTL[K comparable, V any] struct {
	cache   *lru.Cache[K, *ttlEntry[V]]
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	hits    uint64
	misses  uint64
	evicted uint64
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats resume o uso do cache
type Stats struct {
	Size    int    `json:"size"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Evicted uint64 `json:"evicted"`
}

// NewLRUWithTTL cria o cache com até size entradas; ttl zero desativa a expiração
func NewLRUWithTTL[K comparable, V any](size int, ttl time.Duration) (*LRUWithTTL[K, V], error) {
	cache, err := lru.New[K, *ttlEntry[V]](size)
	if err != nil {
		return nil, err
	}

	return &LRUWithTTL[K, V]{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

func (c *LRUWithTTL[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.cache.Get(key)
	if !ok {
		c.misses++
		return zero, false
	}

	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		c.misses++
		return zero, false
	}

	c.hits++
	return entry.value, true
}

func (c *LRUWithTTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if evicted := c.cache.Add(key, &ttlEntry[V]{value: value, expiresAt: expiresAt}); evicted {
		c.evicted++
	}
}

func (c *LRUWithTTL[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:    c.cache.Len(),
		Hits:    c.hits,
		Misses:  c.misses,
		Evicted: c.evicted,
	}
}
