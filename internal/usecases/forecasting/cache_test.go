package forecasting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting/mocks"
	"go.uber.org/mock/gomock"
)

func TestCacheKey(t *testing.T) {
	anchor := time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "forecast:sales:h3:2024-06", CacheKey(domain.HorizonThreeMonths, anchor))
	assert.Equal(t, "forecast:sales:h12:2024-06", CacheKey(domain.HorizonTwelveMonths, anchor))
}

func TestCachedForecaster_GetSalesForecast(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	key := "forecast:sales:h3:2024-06"
	computed := &domain.ForecastResult{Status: domain.ForecastStatusOK, HorizonMonths: 3, Confidence: 80}

	tests := []struct {
		name  string
		setup func(next *mocks.MockForecaster, cache *mocks.MockForecastCache, recorder *mocks.MockMetricsRecorder)
	}{
		{
			name: "Resultado em cache não recalcula",
			setup: func(next *mocks.MockForecaster, cache *mocks.MockForecastCache, recorder *mocks.MockMetricsRecorder) {
				cache.EXPECT().Get(gomock.Any(), key).Return(computed, true, nil)
				recorder.EXPECT().IncCacheResult(CacheResultHit)
			},
		},
		{
			name: "Cache vazio calcula e grava",
			setup: func(next *mocks.MockForecaster, cache *mocks.MockForecastCache, recorder *mocks.MockMetricsRecorder) {
				cache.EXPECT().Get(gomock.Any(), key).Return(nil, false, nil)
				recorder.EXPECT().IncCacheResult(CacheResultMiss)
				next.EXPECT().GetSalesForecast(gomock.Any(), domain.HorizonThreeMonths).Return(computed, nil)
				cache.EXPECT().Set(gomock.Any(), key, computed).Return(nil)
			},
		},
		{
			name: "Erros do cache são ignorados",
			setup: func(next *mocks.MockForecaster, cache *mocks.MockForecastCache, recorder *mocks.MockMetricsRecorder) {
				cache.EXPECT().Get(gomock.Any(), key).Return(nil, false, errors.New("redis indisponível"))
				recorder.EXPECT().IncCacheResult(CacheResultMiss)
				next.EXPECT().GetSalesForecast(gomock.Any(), domain.HorizonThreeMonths).Return(computed, nil)
				cache.EXPECT().Set(gomock.Any(), key, computed).Return(errors.New("redis indisponível"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			next := mocks.NewMockForecaster(ctrl)
			cache := mocks.NewMockForecastCache(ctrl)
			recorder := mocks.NewMockMetricsRecorder(ctrl)
			tt.setup(next, cache, recorder)

			forecaster := NewCachedForecaster(next, cache, recorder).WithClock(func() time.Time { return now })

			result, err := forecaster.GetSalesForecast(ctx, domain.HorizonThreeMonths)
			require.NoError(t, err)
			assert.Equal(t, computed, result)
		})
	}

	t.Run("Erro da previsão não é gravado no cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := mocks.NewMockForecaster(ctrl)
		cache := mocks.NewMockForecastCache(ctrl)

		upstream := NewUpstreamError("storefront", errors.New("timeout"))
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, false, nil)
		next.EXPECT().GetSalesForecast(gomock.Any(), domain.HorizonThreeMonths).Return(nil, upstream)

		forecaster := NewCachedForecaster(next, cache, nil).WithClock(func() time.Time { return now })

		result, err := forecaster.GetSalesForecast(ctx, domain.HorizonThreeMonths)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrUpstreamFailure)
	})
}
