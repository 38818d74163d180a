package forecasting

import (
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

// ComputeSeasonality calcula o fator multiplicativo de cada mês do calendário
// como a média do mês dividida pela média geral. Meses sem histórico ficam neutros.
func ComputeSeasonality(observations []domain.MonthlyObservation) domain.SeasonalProfile {
	profile := domain.NeutralSeasonalProfile()
	if len(observations) == 0 {
		return profile
	}

	var monthTotals [12]float64
	var monthSamples [12]int
	var overallTotal float64

	for _, obs := range observations {
		index := obs.MonthIndex()
		if index < 0 || index > 11 {
			continue
		}
		sales := obs.TotalSales.InexactFloat64()
		monthTotals[index] += sales
		monthSamples[index]++
		overallTotal += sales
	}

	overallAverage := overallTotal / float64(len(observations))
	if overallAverage <= 0 || !isFinite(overallAverage) {
		return profile
	}

	for i := range profile {
		if monthSamples[i] == 0 {
			continue
		}
		monthAverage := monthTotals[i] / float64(monthSamples[i])
		profile[i] = monthAverage / overallAverage
	}

	return profile
}
