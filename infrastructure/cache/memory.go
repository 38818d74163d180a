package cache

import (
	"context"
	"time"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

// MemoryForecastCache guarda previsões no processo
type MemoryForecastCache struct {
	lru *LRUWithTTL[string, domain.ForecastResult]
}

func NewMemoryForecastCache(size int, ttl time.Duration) (*MemoryForecastCache, error) {
	lru, err := NewLRUWithTTL[string, domain.ForecastResult](size, ttl)
	if err != nil {
		return nil, err
	}
	return &MemoryForecastCache{lru: lru}, nil
}

func (c *MemoryForecastCache) Get(_ context.Context, key string) (*domain.ForecastResult, bool, error) {
	result, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return &result, true, nil
}

// Set guarda uma cópia do resultado
func (c *MemoryForecastCache) Set(_ context.Context, key string, result *domain.ForecastResult) error {
	if result == nil {
		return nil
	}
	c.lru.Set(key, *result)
	return nil
}

// EntriesAndEvictions alimenta as métricas do cache
func (c *MemoryForecastCache) EntriesAndEvictions() (int, uint64) {
	stats := c.lru.Stats()
	return stats.Size, stats.Evicted
}
