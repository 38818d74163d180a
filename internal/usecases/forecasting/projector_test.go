package forecasting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func TestProject(t *testing.T) {
	anchor := time.Date(2024, 11, 15, 14, 0, 0, 0, time.UTC)

	t.Run("Continua o índice da regressão e atravessa a virada do ano", func(t *testing.T) {
		fits := domain.SeriesFits{
			Sales:  domain.RegressionFit{Slope: 10, Intercept: 100},
			Orders: domain.RegressionFit{Slope: 1, Intercept: 10},
		}

		projection := Project(fits, domain.NeutralSeasonalProfile(), anchor, 3, 80, 5)

		require.Len(t, projection.Months, 3)
		assert.Equal(t, "2024-12", projection.Months[0].MonthKey)
		assert.Equal(t, "2025-01", projection.Months[1].MonthKey)
		assert.Equal(t, "2025-02", projection.Months[2].MonthKey)

		assert.InDelta(t, 150, projection.Months[0].Sales, 1e-9)
		assert.InDelta(t, 160, projection.Months[1].Sales, 1e-9)
		assert.InDelta(t, 170, projection.Months[2].Sales, 1e-9)
		assert.InDelta(t, 15, projection.Months[0].Orders, 1e-9)

		assert.Equal(t, 80, projection.Months[0].Confidence)
		assert.Equal(t, 75, projection.Months[1].Confidence)
		assert.Equal(t, 70, projection.Months[2].Confidence)

		assert.InDelta(t, 480, projection.TotalSales, 1e-9)
		assert.InDelta(t, 48, projection.TotalOrders, 1e-9)
		assert.InDelta(t, 10, projection.AverageOrderValue, 1e-9)
		assert.InDelta(t, 1, projection.SeasonalityAverage, 1e-9)
	})

	t.Run("Aplica o fator sazonal do mês projetado", func(t *testing.T) {
		seasonal := domain.NeutralSeasonalProfile()
		seasonal[11] = 2 // dezembro
		seasonal[0] = 0.5

		fits := domain.SeriesFits{
			Sales:  domain.RegressionFit{Slope: 0, Intercept: 100},
			Orders: domain.RegressionFit{Slope: 0, Intercept: 10},
		}

		projection := Project(fits, seasonal, anchor, 2, 80, 5)

		assert.InDelta(t, 200, projection.Months[0].Sales, 1e-9)
		assert.InDelta(t, 50, projection.Months[1].Sales, 1e-9)
		assert.InDelta(t, 2, projection.Months[0].SeasonalFactor, 1e-9)
		assert.InDelta(t, 1.25, projection.SeasonalityAverage, 1e-9)
	})

	t.Run("Projeções negativas são limitadas a zero", func(t *testing.T) {
		fits := domain.SeriesFits{
			Sales:  domain.RegressionFit{Slope: -100, Intercept: 100},
			Orders: domain.RegressionFit{Slope: -10, Intercept: 10},
		}

		projection := Project(fits, domain.NeutralSeasonalProfile(), anchor, 6, 50, 3)

		for _, month := range projection.Months {
			assert.GreaterOrEqual(t, month.Sales, 0.0)
			assert.GreaterOrEqual(t, month.Orders, 0.0)
		}
		assert.Equal(t, 0.0, projection.TotalSales)
		assert.Equal(t, 0.0, projection.AverageOrderValue)
	})

	t.Run("Âncora no último dia do mês não pula meses", func(t *testing.T) {
		endOfMonth := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
		projection := Project(domain.SeriesFits{}, domain.NeutralSeasonalProfile(), endOfMonth, 2, 50, 3)

		assert.Equal(t, "2024-02", projection.Months[0].MonthKey)
		assert.Equal(t, "2024-03", projection.Months[1].MonthKey)
	})
}
