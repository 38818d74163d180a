package forecasting

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/utils"
)

// Quantidade máxima de meses devolvidos no histórico
const HistoricalWindowSize = 12

// BuildOptions parametriza a montagem da previsão
type BuildOptions struct {
	VarianceScale float64
	GeneratedAt   time.Time
}

// BuildForecast executa agregação, ajuste de tendência, sazonalidade, confiança e projeção.
// anchor é o mês corrente; a projeção começa no mês seguinte.
func BuildForecast(records []domain.RawOrderRecord, horizon domain.Horizon, anchor time.Time, opts BuildOptions) domain.ForecastResult {
	horizonMonths := int(horizon)
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	if len(records) == 0 {
		logrus.WithField("horizon", horizonMonths).Info("Previsão sem dados: nenhum pedido no período")
		return noDataResult(horizonMonths, opts.GeneratedAt)
	}

	observations := Aggregate(records)

	if len(observations) < MinObservations {
		logrus.WithFields(logrus.Fields{
			"observations": len(observations),
			"horizon":      horizonMonths,
		}).Info("Previsão com dados insuficientes")
		return insufficientDataResult(observations, horizonMonths, opts.GeneratedAt)
	}

	fits := FitSeries(observations)
	seasonal := ComputeSeasonality(observations)

	salesSeries := SalesSeries(observations)
	variance := ResidualVariance(salesSeries, fits.Sales)
	confidence := Confidence(fits.Sales.RSquared, len(observations), variance, horizonMonths, opts.VarianceScale)
	trend := ClassifyTrend(fits.Sales, salesSeries[0])

	projection := Project(fits, seasonal, anchor, horizonMonths, confidence, len(observations))

	breakdown := make([]domain.MonthlyForecast, 0, len(projection.Months))
	for _, month := range projection.Months {
		breakdown = append(breakdown, domain.MonthlyForecast{
			MonthKey:        month.MonthKey,
			PredictedSales:  utils.RoundWithTwoDecimalPlace(month.Sales),
			PredictedOrders: int(math.Round(month.Orders)),
			SeasonalFactor:  utils.RoundWithTwoDecimalPlace(month.SeasonalFactor),
			Confidence:      month.Confidence,
		})
	}

	logrus.WithFields(logrus.Fields{
		"observations": len(observations),
		"horizon":      horizonMonths,
		"confidence":   confidence,
		"trend":        trend,
		"r_squared":    fits.Sales.RSquared,
	}).Debug("Previsão de vendas calculada")

	return domain.ForecastResult{
		Status:             domain.ForecastStatusOK,
		PeriodLabel:        periodLabel(projection.Months),
		HorizonMonths:      horizonMonths,
		PredictedSales:     utils.RoundWithTwoDecimalPlace(projection.TotalSales),
		PredictedOrders:    int(math.Round(projection.TotalOrders)),
		PredictedAOV:       utils.RoundWithTwoDecimalPlace(projection.AverageOrderValue),
		Confidence:         confidence,
		Trend:              trend,
		SeasonalityAverage: utils.RoundWithTwoDecimalPlace(projection.SeasonalityAverage),
		HistoricalWindow:   historicalWindow(observations),
		MonthlyBreakdown:   breakdown,
		Fits:               &fits,
		GeneratedAt:        opts.GeneratedAt,
	}
}

func noDataResult(horizonMonths int, generatedAt time.Time) domain.ForecastResult {
	return domain.ForecastResult{
		Status:           domain.ForecastStatusNoData,
		PeriodLabel:      HorizonLabel(horizonMonths),
		HorizonMonths:    horizonMonths,
		Confidence:       NoDataConfidence,
		Trend:            domain.TrendStable,
		HistoricalWindow: []domain.MonthlyObservation{},
		MonthlyBreakdown: []domain.MonthlyForecast{},
		GeneratedAt:      generatedAt,
	}
}

func insufficientDataResult(observations []domain.MonthlyObservation, horizonMonths int, generatedAt time.Time) domain.ForecastResult {
	return domain.ForecastResult{
		Status:           domain.ForecastStatusInsufficientData,
		PeriodLabel:      HorizonLabel(horizonMonths),
		HorizonMonths:    horizonMonths,
		Confidence:       InsufficientDataConfidence,
		Trend:            domain.TrendStable,
		HistoricalWindow: historicalWindow(observations),
		MonthlyBreakdown: []domain.MonthlyForecast{},
		GeneratedAt:      generatedAt,
	}
}

// HorizonLabel descreve o horizonte quando não há meses projetados
func HorizonLabel(horizonMonths int) string {
	if horizonMonths == 1 {
		return "Próximo mês"
	}
	return fmt.Sprintf("Próximos %d meses", horizonMonths)
}

func periodLabel(months []ProjectedMonth) string {
	if len(months) == 0 {
		return ""
	}
	first := months[0].MonthKey
	last := months[len(months)-1].MonthKey
	if first == last {
		return first
	}
	return fmt.Sprintf("%s a %s", first, last)
}

func historicalWindow(observations []domain.MonthlyObservation) []domain.MonthlyObservation {
	start := 0
	if len(observations) > HistoricalWindowSize {
		start = len(observations) - HistoricalWindowSize
	}
	window := make([]domain.MonthlyObservation, len(observations)-start)
	copy(window, observations[start:])
	return window
}
