package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/export"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
)

// parseHorizonParam lê o horizonte da query string e escreve o erro quando inválido
func parseHorizonParam(w http.ResponseWriter, r *http.Request) (domain.Horizon, bool) {
	value := r.URL.Query().Get("horizon")
	if value == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro horizon é obrigatório", map[string]any{
			"accepted": domain.AvailableHorizons,
		})
		return 0, false
	}

	horizon, err := domain.ParseHorizon(value)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), map[string]any{
			"horizon":  value,
			"accepted": domain.AvailableHorizons,
		})
		return 0, false
	}

	return horizon, true
}

// writeForecastError traduz os erros da previsão para o formato da API
func writeForecastError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var forecastErr *forecasting.ForecastError
	switch {
	case errors.Is(err, forecasting.ErrInvalidHorizon):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.As(err, &forecastErr):
		logger.WithField("source", forecastErr.Source).Error("Erro ao buscar pedidos para a previsão")
		apiErrors.WriteError(w, forecastErr.Code, "Não foi possível buscar os pedidos", map[string]string{
			"source": forecastErr.Source,
		})
	default:
		logger.Error("Erro ao calcular previsão de vendas")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular previsão de vendas", nil)
	}
}

// GetSalesForecast retorna a previsão de vendas para o horizonte informado
func GetSalesForecast(forecaster forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		horizon, ok := parseHorizonParam(w, r)
		if !ok {
			return
		}

		result, err := forecaster.GetSalesForecast(r.Context(), horizon)
		if err != nil {
			writeForecastError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta da previsão")
		}
	}
}

// ExportSalesForecast devolve a previsão como planilha xlsx
func ExportSalesForecast(forecaster forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		horizon, ok := parseHorizonParam(w, r)
		if !ok {
			return
		}

		result, err := forecaster.GetSalesForecast(r.Context(), horizon)
		if err != nil {
			writeForecastError(w, r, err)
			return
		}

		f, err := export.Workbook(result)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao montar planilha da previsão")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(result)))
		if _, err := f.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha da previsão")
		}
	}
}

// ListForecastSnapshots lista os snapshots gravados pelo agendador
func ListForecastSnapshots(snapshotter forecasting.Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var horizon domain.Horizon
		if value := query.Get("horizon"); value != "" {
			parsed, err := domain.ParseHorizon(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			horizon = parsed
		}

		limit := 0
		if value := query.Get("limit"); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro limit deve ser numérico", nil)
				return
			}
			limit = parsed
		}

		snapshots, err := snapshotter.ListSnapshots(r.Context(), horizon, limit)
		if err != nil {
			if errors.Is(err, forecasting.ErrInvalidLimit) || errors.Is(err, forecasting.ErrInvalidHorizon) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar snapshots de previsão")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar snapshots", nil)
			return
		}

		if snapshots == nil {
			snapshots = []*domain.ForecastSnapshot{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta dos snapshots")
		}
	}
}
