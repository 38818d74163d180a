package domain

import (
	"errors"
	"strconv"
	"time"
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type ForecastStatus string

const (
	ForecastStatusOK               ForecastStatus = "ok"
	ForecastStatusInsufficientData ForecastStatus = "insufficient_data"
	ForecastStatusNoData           ForecastStatus = "no_data"
)

// Horizon é a quantidade de meses projetados
type Horizon int

const (
	HorizonOneMonth     Horizon = 1
	HorizonThreeMonths  Horizon = 3
	HorizonSixMonths    Horizon = 6
	HorizonTwelveMonths Horizon = 12
)

var ErrInvalidHorizon = errors.New("horizonte inválido: valores aceitos 1, 3, 6 ou 12")

// AvailableHorizons lista os horizontes aceitos pela previsão
var AvailableHorizons = []Horizon{
	HorizonOneMonth,
	HorizonThreeMonths,
	HorizonSixMonths,
	HorizonTwelveMonths,
}

func (h Horizon) IsValid() bool {
	switch h {
	case HorizonOneMonth, HorizonThreeMonths, HorizonSixMonths, HorizonTwelveMonths:
		return true
	}
	return false
}

// ParseHorizon converte o parâmetro de consulta em um Horizon válido
func ParseHorizon(value string) (Horizon, error) {
	months, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrInvalidHorizon
	}

	horizon := Horizon(months)
	if !horizon.IsValid() {
		return 0, ErrInvalidHorizon
	}

	return horizon, nil
}

// RegressionFit é o resultado de uma regressão linear por mínimos quadrados
type RegressionFit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// Predict avalia a reta no índice informado
func (f RegressionFit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// SeriesFits agrupa as regressões das três séries mensais
type SeriesFits struct {
	Sales  RegressionFit `json:"sales"`
	Orders RegressionFit `json:"orders"`
	AOV    RegressionFit `json:"aov"`
}

// SeasonalProfile guarda o fator multiplicativo de cada mês do calendário (0 = janeiro)
type SeasonalProfile [12]float64

// NeutralSeasonalProfile retorna um perfil sem ajuste sazonal
func NeutralSeasonalProfile() SeasonalProfile {
	var profile SeasonalProfile
	for i := range profile {
		profile[i] = 1.0
	}
	return profile
}

// Factor retorna o fator sazonal do mês informado
func (p SeasonalProfile) Factor(month time.Month) float64 {
	return p[int(month)-1]
}

type MonthlyForecast struct {
	MonthKey        string  `json:"month_key"`
	PredictedSales  float64 `json:"predicted_sales"`
	PredictedOrders int     `json:"predicted_orders"`
	SeasonalFactor  float64 `json:"seasonal_factor"`
	Confidence      int     `json:"confidence"`
}

// ForecastResult é a previsão de vendas devolvida ao console administrativo
type ForecastResult struct {
	Status             ForecastStatus       `json:"status"`
	PeriodLabel        string               `json:"period_label"`
	HorizonMonths      int                  `json:"horizon_months"`
	PredictedSales     float64              `json:"predicted_sales"`
	PredictedOrders    int                  `json:"predicted_orders"`
	PredictedAOV       float64              `json:"predicted_aov"`
	Confidence         int                  `json:"confidence"`
	Trend              Trend                `json:"trend"`
	SeasonalityAverage float64              `json:"seasonality_average"`
	HistoricalWindow   []MonthlyObservation `json:"historical_window"`
	MonthlyBreakdown   []MonthlyForecast    `json:"monthly_breakdown"`
	Fits               *SeriesFits          `json:"fits,omitempty"`
	GeneratedAt        time.Time            `json:"generated_at"`
}

// ForecastSnapshot representa uma previsão calculada pelo agendador e armazenada no banco
type ForecastSnapshot struct {
	ID            string          `json:"id"`
	HorizonMonths int             `json:"horizon_months"`
	PeriodLabel   string          `json:"period_label"`
	Confidence    int             `json:"confidence"`
	Trend         Trend           `json:"trend"`
	Forecast      *ForecastResult `json:"forecast"`
	GeneratedAt   time.Time       `json:"generated_at"`
	CreatedAt     time.Time       `json:"created_at"`
}
