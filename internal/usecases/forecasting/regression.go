package forecasting

import (
	"math"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

// Limite relativo ao primeiro mês usado na classificação da tendência
const trendThresholdRatio = 0.05

// FitLine calcula a reta de mínimos quadrados sobre o índice implícito x = 0, 1, 2...
// O índice avança um por observação, mesmo quando há meses sem pedidos entre elas.
func FitLine(series []float64) domain.RegressionFit {
	n := float64(len(series))
	if len(series) == 0 {
		return domain.RegressionFit{}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return domain.RegressionFit{
			Slope:     0,
			Intercept: sumY / n,
			RSquared:  0,
		}
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	fit := domain.RegressionFit{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared(series, slope, intercept, sumY/n),
	}

	if !isFinite(fit.Slope) || !isFinite(fit.Intercept) {
		return domain.RegressionFit{Intercept: sumY / n}
	}

	return fit
}

func rSquared(series []float64, slope, intercept, mean float64) float64 {
	var ssRes, ssTot float64
	for i, y := range series {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - mean) * (y - mean)
	}

	if ssTot == 0 {
		return 1
	}

	r2 := 1 - ssRes/ssTot
	if !isFinite(r2) {
		return 0
	}
	return math.Max(0, math.Min(1, r2))
}

// ResidualVariance retorna a variância populacional dos resíduos da reta (SS_res / n)
func ResidualVariance(series []float64, fit domain.RegressionFit) float64 {
	if len(series) == 0 {
		return 0
	}

	var ssRes float64
	for i, y := range series {
		residual := y - fit.Predict(float64(i))
		ssRes += residual * residual
	}

	variance := ssRes / float64(len(series))
	if !isFinite(variance) {
		return 0
	}
	return variance
}

// SalesSeries extrai a série de vendas totais das observações
func SalesSeries(observations []domain.MonthlyObservation) []float64 {
	series := make([]float64, len(observations))
	for i, obs := range observations {
		series[i] = obs.TotalSales.InexactFloat64()
	}
	return series
}

// FitSeries ajusta as retas de vendas, quantidade de pedidos e ticket médio
func FitSeries(observations []domain.MonthlyObservation) domain.SeriesFits {
	orders := make([]float64, len(observations))
	aov := make([]float64, len(observations))
	for i, obs := range observations {
		orders[i] = float64(obs.OrderCount)
		aov[i] = obs.AverageOrderValue.InexactFloat64()
	}

	return domain.SeriesFits{
		Sales:  FitLine(SalesSeries(observations)),
		Orders: FitLine(orders),
		AOV:    FitLine(aov),
	}
}

// ClassifyTrend classifica a tendência pela inclinação da reta de vendas,
// usando 5% das vendas do primeiro mês como limite
func ClassifyTrend(salesFit domain.RegressionFit, firstMonthSales float64) domain.Trend {
	threshold := firstMonthSales * trendThresholdRatio

	switch {
	case salesFit.Slope > threshold:
		return domain.TrendIncreasing
	case salesFit.Slope < -threshold:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
