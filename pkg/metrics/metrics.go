package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores Prometheus da API
type Metrics struct {
	registry *prometheus.Registry

	ForecastRequests  *prometheus.CounterVec
	ForecastDuration  *prometheus.HistogramVec
	UpstreamFailures  *prometheus.CounterVec
	CacheResults      *prometheus.CounterVec
	SnapshotsRecorded *prometheus.CounterVec
}

// New cria um registro próprio com os coletores da API e do processo
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ForecastRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_forecast_requests_total",
			Help: "Total de previsões de vendas calculadas por horizonte e status",
		}, []string{"horizon", "status"}),
		ForecastDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sales_forecast_duration_seconds",
			Help:    "Duração do cálculo da previsão, incluindo a busca de pedidos",
			Buckets: prometheus.DefBuckets,
		}, []string{"horizon"}),
		UpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_forecast_upstream_failures_total",
			Help: "Falhas ao buscar pedidos na origem",
		}, []string{"source"}),
		CacheResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_forecast_cache_total",
			Help: "Consultas ao cache de previsões por resultado (hit ou miss)",
		}, []string{"result"}),
		SnapshotsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_forecast_snapshots_total",
			Help: "Snapshots de previsão gravados pelo agendador",
		}, []string{"horizon", "outcome"}),
	}
}

func (m *Metrics) ObserveForecast(horizonMonths int, status string, duration time.Duration) {
	horizon := strconv.Itoa(horizonMonths)
	m.ForecastRequests.WithLabelValues(horizon, status).Inc()
	m.ForecastDuration.WithLabelValues(horizon).Observe(duration.Seconds())
}

func (m *Metrics) IncUpstreamFailure(source string) {
	m.UpstreamFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) IncCacheResult(result string) {
	m.CacheResults.WithLabelValues(result).Inc()
}

func (m *Metrics) IncSnapshot(horizonMonths int, outcome string) {
	m.SnapshotsRecorded.WithLabelValues(strconv.Itoa(horizonMonths), outcome).Inc()
}

// RegisterCacheStats publica o tamanho e as remoções do cache em memória a cada coleta.
// Deve ser chamado uma única vez por registro.
func (m *Metrics) RegisterCacheStats(stats func() (entries int, evicted uint64)) {
	factory := promauto.With(m.registry)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sales_forecast_cache_entries",
		Help: "Previsões guardadas no cache em memória",
	}, func() float64 {
		entries, _ := stats()
		return float64(entries)
	})
	factory.NewCounterFunc(prometheus.CounterOpts{
		Name: "sales_forecast_cache_evictions_total",
		Help: "Previsões removidas do cache em memória por falta de espaço",
	}, func() float64 {
		_, evicted := stats()
		return float64(evicted)
	})
}

// Handler expõe o registro no formato texto do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
