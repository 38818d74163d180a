package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func TestFitLine(t *testing.T) {
	tests := []struct {
		name     string
		series   []float64
		expected domain.RegressionFit
	}{
		{
			name:     "Série vazia",
			series:   nil,
			expected: domain.RegressionFit{Slope: 0, Intercept: 0, RSquared: 0},
		},
		{
			name:     "Um único ponto não tenta a regressão",
			series:   []float64{42},
			expected: domain.RegressionFit{Slope: 0, Intercept: 42, RSquared: 0},
		},
		{
			name:     "Dois pontos formam uma reta perfeita",
			series:   []float64{10, 20},
			expected: domain.RegressionFit{Slope: 10, Intercept: 10, RSquared: 1},
		},
		{
			name:     "Reta perfeita crescente",
			series:   []float64{1, 3, 5, 7},
			expected: domain.RegressionFit{Slope: 2, Intercept: 1, RSquared: 1},
		},
		{
			name:     "Série constante tem R² igual a 1",
			series:   []float64{5, 5, 5},
			expected: domain.RegressionFit{Slope: 0, Intercept: 5, RSquared: 1},
		},
		{
			name:     "Série com ruído",
			series:   []float64{2, 4, 3, 5},
			expected: domain.RegressionFit{Slope: 0.8, Intercept: 2.3, RSquared: 0.64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := FitLine(tt.series)

			assert.InDelta(t, tt.expected.Slope, fit.Slope, 1e-9)
			assert.InDelta(t, tt.expected.Intercept, fit.Intercept, 1e-9)
			assert.InDelta(t, tt.expected.RSquared, fit.RSquared, 1e-9)
			assert.GreaterOrEqual(t, fit.RSquared, 0.0)
			assert.LessOrEqual(t, fit.RSquared, 1.0)
		})
	}
}

func TestFitSeries(t *testing.T) {
	observations := []domain.MonthlyObservation{
		observation(2024, 1, 1000, 10),
		observation(2024, 2, 2000, 15),
		observation(2024, 3, 3000, 20),
	}

	fits := FitSeries(observations)

	assert.InDelta(t, 1000, fits.Sales.Slope, 1e-9)
	assert.InDelta(t, 1000, fits.Sales.Intercept, 1e-9)
	assert.InDelta(t, 5, fits.Orders.Slope, 1e-9)
	assert.InDelta(t, 10, fits.Orders.Intercept, 1e-9)
	// Ticket médio: 100, 133.33, 150
	assert.Greater(t, fits.AOV.Slope, 0.0)
}

func TestResidualVariance(t *testing.T) {
	series := []float64{2, 4, 3, 5}
	fit := FitLine(series)

	// Resíduos: -0.3, 0.9, -0.9, 0.3 => SS_res = 1.8
	assert.InDelta(t, 0.45, ResidualVariance(series, fit), 1e-9)
	assert.InDelta(t, 0, ResidualVariance([]float64{1, 3, 5, 7}, FitLine([]float64{1, 3, 5, 7})), 1e-9)
	assert.Equal(t, 0.0, ResidualVariance(nil, domain.RegressionFit{}))
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name       string
		slope      float64
		firstMonth float64
		expected   domain.Trend
	}{
		{name: "Inclinação acima de 5% do primeiro mês", slope: 10000, firstMonth: 10000, expected: domain.TrendIncreasing},
		{name: "Inclinação abaixo de -5% do primeiro mês", slope: -600, firstMonth: 10000, expected: domain.TrendDecreasing},
		{name: "Inclinação dentro do limite", slope: 400, firstMonth: 10000, expected: domain.TrendStable},
		{name: "Inclinação exatamente no limite", slope: 500, firstMonth: 10000, expected: domain.TrendStable},
		{name: "Série plana", slope: 0, firstMonth: 10000, expected: domain.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ClassifyTrend(domain.RegressionFit{Slope: tt.slope}, tt.firstMonth)
			assert.Equal(t, tt.expected, trend)
		})
	}
}

func TestClassifyTrend_FromSeries(t *testing.T) {
	increasing := []float64{1000, 1200, 1500, 1700}
	flat := []float64{1000, 1000, 1000, 1000}

	assert.Equal(t, domain.TrendIncreasing, ClassifyTrend(FitLine(increasing), increasing[0]))
	assert.Equal(t, domain.TrendStable, ClassifyTrend(FitLine(flat), flat[0]))
}
