package forecasting

import (
	"context"
	"time"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_forecasting.go -package=mocks

// OrderSource define a origem dos pedidos concluídos usados na previsão
type OrderSource interface {
	// ListCompletedOrders retorna os pedidos não cancelados em [since, until), em ordem crescente
	ListCompletedOrders(ctx context.Context, since, until time.Time) ([]domain.RawOrderRecord, error)
}

// Forecaster define a interface da previsão de vendas
type Forecaster interface {
	GetSalesForecast(ctx context.Context, horizon domain.Horizon) (*domain.ForecastResult, error)
}

// ForecastCache guarda previsões já calculadas
type ForecastCache interface {
	Get(ctx context.Context, key string) (*domain.ForecastResult, bool, error)
	Set(ctx context.Context, key string, result *domain.ForecastResult) error
}

// MetricsRecorder recebe as métricas da previsão
type MetricsRecorder interface {
	ObserveForecast(horizonMonths int, status string, duration time.Duration)
	IncUpstreamFailure(source string)
	IncCacheResult(result string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveForecast(int, string, time.Duration) {}
func (nopRecorder) IncUpstreamFailure(string)                  {}
func (nopRecorder) IncCacheResult(string)                      {}

// Snapshotter registra e lista snapshots de previsão
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, result *domain.ForecastResult) (*domain.ForecastSnapshot, error)
	ListSnapshots(ctx context.Context, horizon domain.Horizon, limit int) ([]*domain.ForecastSnapshot, error)
}
