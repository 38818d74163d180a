package forecasting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const (
	CacheResultHit  = "hit"
	CacheResultMiss = "miss"
)

// CacheKey monta a chave da previsão pelo horizonte e mês de referência
func CacheKey(horizon domain.Horizon, anchor time.Time) string {
	anchor = FirstDayOfMonth(anchor)
	return fmt.Sprintf("forecast:sales:h%d:%04d-%02d", int(horizon), anchor.Year(), int(anchor.Month()))
}

// CachedForecaster consulta o cache antes de delegar a previsão.
// Falhas do cache são registradas e ignoradas.
type CachedForecaster struct {
	next    Forecaster
	cache   ForecastCache
	metrics MetricsRecorder
	now     func() time.Time
}

func NewCachedForecaster(next Forecaster, cache ForecastCache, recorder MetricsRecorder) *CachedForecaster {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &CachedForecaster{
		next:    next,
		cache:   cache,
		metrics: recorder,
		now:     time.Now,
	}
}

// WithClock substitui o relógio usado para montar a chave do cache
func (c *CachedForecaster) WithClock(now func() time.Time) *CachedForecaster {
	c.now = now
	return c
}

func (c *CachedForecaster) GetSalesForecast(ctx context.Context, horizon domain.Horizon) (*domain.ForecastResult, error) {
	if !horizon.IsValid() {
		return nil, ErrInvalidHorizon
	}

	key := CacheKey(horizon, c.now().UTC())

	cached, found, err := c.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Erro ao consultar cache de previsão, calculando novamente")
	} else if found && cached != nil {
		c.metrics.IncCacheResult(CacheResultHit)
		return cached, nil
	}
	c.metrics.IncCacheResult(CacheResultMiss)

	result, err := c.next.GetSalesForecast(ctx, horizon)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, result); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Erro ao salvar previsão no cache")
	}

	return result, nil
}
