package forecasting

import (
	"math"
)

const (
	// DefaultVarianceScale é a escala da penalidade de variância, em unidade monetária ao quadrado
	DefaultVarianceScale = 10000.0

	MinConfidence              = 10
	MaxConfidence              = 95
	InsufficientDataConfidence = 20
	NoDataConfidence           = 0

	// Quantidade mínima de meses com pedidos para projetar
	MinObservations = 3

	monthlyConfidenceDecay = 5
	fullHistoryMonths      = 12
)

// Confidence combina qualidade do ajuste, tamanho do histórico, variância e horizonte
// em uma nota entre 10 e 95
func Confidence(rSquared float64, observationCount int, variance float64, horizonMonths int, varianceScale float64) int {
	if varianceScale <= 0 {
		varianceScale = DefaultVarianceScale
	}

	score := rSquared * 100

	score *= math.Min(1, float64(observationCount)/fullHistoryMonths)

	score *= math.Max(0.3, 1-(float64(horizonMonths)/12)*0.3)

	if variance > 0 {
		score *= math.Max(0.5, 1-math.Min(variance/varianceScale, 0.5))
	}

	if !isFinite(score) {
		return MinConfidence
	}

	rounded := int(math.Round(score))
	return max(MinConfidence, min(MaxConfidence, rounded))
}

// MonthConfidence aplica o decaimento de 5 pontos por mês à nota base, com piso de 10.
// O índice do mês começa em 1.
func MonthConfidence(base, monthIndex int) int {
	return max(MinConfidence, base-(monthIndex-1)*monthlyConfidenceDecay)
}
