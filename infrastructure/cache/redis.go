package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Connect cria o cliente Redis a partir de uma URL redis:// ou de host:porta
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			return nil, fmt.Errorf("erro ao analisar a URL do redis: %w", parseErr)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisForecastCache compartilha as previsões entre instâncias da API
type RedisForecastCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisForecastCache(client redis.Cmdable, ttl time.Duration) *RedisForecastCache {
	return &RedisForecastCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisForecastCache) Get(ctx context.Context, key string) (*domain.ForecastResult, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler previsão do redis: %w", err)
	}

	result := &domain.ForecastResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, false, fmt.Errorf("erro ao deserializar previsão do redis: %w", err)
	}

	return result, true, nil
}

func (c *RedisForecastCache) Set(ctx context.Context, key string, result *domain.ForecastResult) error {
	if result == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("erro ao serializar previsão: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao salvar previsão no redis: %w", err)
	}

	return nil
}

// PingContext permite usar o cache no healthcheck
func (c *RedisForecastCache) PingContext(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
