package forecasting

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const defaultLookbackMonths = 24

// Service busca os pedidos na origem configurada e monta a previsão
type Service struct {
	source         OrderSource
	sourceName     string
	lookbackMonths int
	varianceScale  float64
	metrics        MetricsRecorder
	now            func() time.Time
}

// NewService cria uma nova instância do serviço de previsão
func NewService(cfg *config.Config, source OrderSource, recorder MetricsRecorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	lookback := cfg.Forecast.LookbackMonths
	if lookback <= 0 {
		lookback = defaultLookbackMonths
	}

	return &Service{
		source:         source,
		sourceName:     cfg.Forecast.OrderSource,
		lookbackMonths: lookback,
		varianceScale:  cfg.Forecast.VarianceScale,
		metrics:        recorder,
		now:            time.Now,
	}
}

// WithClock substitui o relógio usado para definir o mês de referência
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Window retorna a janela de busca de pedidos para o instante informado
func (s *Service) Window(now time.Time) domain.OrderWindow {
	anchor := FirstDayOfMonth(now)
	return domain.OrderWindow{
		Since: anchor.AddDate(0, -s.lookbackMonths, 0),
		Until: now,
	}
}

// GetSalesForecast calcula a previsão de vendas para o horizonte informado
func (s *Service) GetSalesForecast(ctx context.Context, horizon domain.Horizon) (*domain.ForecastResult, error) {
	if !horizon.IsValid() {
		return nil, ErrInvalidHorizon
	}

	startTime := time.Now()
	now := s.now().UTC()
	window := s.Window(now)

	records, err := s.source.ListCompletedOrders(ctx, window.Since, window.Until)
	if err != nil {
		s.metrics.IncUpstreamFailure(s.sourceName)
		logrus.WithError(err).WithFields(logrus.Fields{
			"source":  s.sourceName,
			"since":   window.Since.Format(time.DateOnly),
			"until":   window.Until.Format(time.DateOnly),
			"horizon": int(horizon),
		}).Error("Erro ao buscar pedidos para a previsão de vendas")
		return nil, NewUpstreamError(s.sourceName, err)
	}

	result := BuildForecast(records, horizon, now, BuildOptions{
		VarianceScale: s.varianceScale,
		GeneratedAt:   now,
	})

	s.metrics.ObserveForecast(int(horizon), string(result.Status), time.Since(startTime))

	logrus.WithFields(logrus.Fields{
		"source":     s.sourceName,
		"records":    len(records),
		"horizon":    int(horizon),
		"status":     result.Status,
		"confidence": result.Confidence,
	}).Info("Previsão de vendas gerada")

	return &result, nil
}
