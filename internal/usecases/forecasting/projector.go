package forecasting

import (
	"math"
	"time"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

// Projection guarda os totais projetados em precisão completa, antes do arredondamento
type Projection struct {
	TotalSales         float64
	TotalOrders        float64
	AverageOrderValue  float64
	SeasonalityAverage float64
	Months             []ProjectedMonth
}

type ProjectedMonth struct {
	MonthKey       string
	Month          time.Time
	Sales          float64
	Orders         float64
	SeasonalFactor float64
	Confidence     int
}

// FirstDayOfMonth normaliza a data para o primeiro dia do mês em UTC
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Project percorre o horizonte mês a mês aplicando a reta de tendência e o fator sazonal.
// O mês i (a partir de 1) é anchor + i meses e usa o índice x = observationCount + i - 1.
func Project(
	fits domain.SeriesFits,
	seasonal domain.SeasonalProfile,
	anchor time.Time,
	horizonMonths int,
	baseConfidence int,
	observationCount int,
) Projection {
	anchor = FirstDayOfMonth(anchor)
	projection := Projection{
		Months: make([]ProjectedMonth, 0, horizonMonths),
	}

	var factorSum float64
	for i := 1; i <= horizonMonths; i++ {
		target := anchor.AddDate(0, i, 0)
		x := float64(observationCount + i - 1)
		factor := seasonal.Factor(target.Month())

		sales := nonNegative(fits.Sales.Predict(x) * factor)
		orders := nonNegative(fits.Orders.Predict(x) * factor)

		projection.TotalSales += sales
		projection.TotalOrders += orders
		factorSum += factor

		projection.Months = append(projection.Months, ProjectedMonth{
			MonthKey:       MonthKey(target.Year(), target.Month()),
			Month:          target,
			Sales:          sales,
			Orders:         orders,
			SeasonalFactor: factor,
			Confidence:     MonthConfidence(baseConfidence, i),
		})
	}

	if projection.TotalOrders > 0 {
		projection.AverageOrderValue = projection.TotalSales / projection.TotalOrders
	}

	if horizonMonths > 0 {
		projection.SeasonalityAverage = factorSum / float64(horizonMonths)
	}

	return projection
}

func nonNegative(value float64) float64 {
	if !isFinite(value) {
		return 0
	}
	return math.Max(0, value)
}
