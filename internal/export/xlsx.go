package export

import (
	"fmt"
	"io"
	"time"

	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ForecastSheet = "Previsao"
	HistorySheet  = "Historico"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	breakdownHeader = []any{"Mês", "Vendas previstas", "Pedidos previstos", "Fator sazonal", "Confiança (%)"}
	historyHeader   = []any{"Mês", "Vendas", "Pedidos", "Ticket médio"}
)

// FileName monta o nome do anexo da previsão
func FileName(result *domain.ForecastResult) string {
	return fmt.Sprintf("previsao-vendas-%dm-%s.xlsx", result.HorizonMonths, result.GeneratedAt.UTC().Format("2006-01-02"))
}

// WriteForecast grava a previsão em formato xlsx
func WriteForecast(w io.Writer, result *domain.ForecastResult) error {
	if result == nil {
		return fmt.Errorf("previsão vazia")
	}

	f, err := Workbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("erro ao gravar planilha: %w", err)
	}

	return nil
}

// Workbook monta a planilha com o resumo e o detalhamento mensal da previsão
// e uma segunda aba com a janela histórica usada no cálculo
func Workbook(result *domain.ForecastResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ForecastSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao renomear aba: %w", err)
	}
	if _, err := f.NewSheet(HistorySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao criar aba de histórico: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("erro ao criar estilo: %w", err)
	}

	if err := writeForecastSheet(f, result, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHistorySheet(f, result.HistoricalWindow, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeForecastSheet(f *excelize.File, result *domain.ForecastResult, headerStyle int) error {
	rows := [][]any{
		{"Status", string(result.Status)},
		{"Período", result.PeriodLabel},
		{"Horizonte (meses)", result.HorizonMonths},
		{"Vendas previstas", result.PredictedSales},
		{"Pedidos previstos", result.PredictedOrders},
		{"Ticket médio previsto", result.PredictedAOV},
		{"Confiança (%)", result.Confidence},
		{"Tendência", string(result.Trend)},
		{"Sazonalidade média", result.SeasonalityAverage},
		{"Gerado em", result.GeneratedAt.UTC().Format(time.RFC3339)},
		{},
		breakdownHeader,
	}

	for _, month := range result.MonthlyBreakdown {
		rows = append(rows, []any{
			month.MonthKey,
			month.PredictedSales,
			month.PredictedOrders,
			month.SeasonalFactor,
			month.Confidence,
		})
	}

	if err := setRows(f, ForecastSheet, rows); err != nil {
		return err
	}

	headerRow := 12
	if err := f.SetCellStyle(ForecastSheet, "A1", fmt.Sprintf("A%d", headerRow-2), headerStyle); err != nil {
		return fmt.Errorf("erro ao aplicar estilo: %w", err)
	}
	if err := f.SetCellStyle(ForecastSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow), headerStyle); err != nil {
		return fmt.Errorf("erro ao aplicar estilo: %w", err)
	}

	return f.SetColWidth(ForecastSheet, "A", "E", 22)
}

func writeHistorySheet(f *excelize.File, history []domain.MonthlyObservation, headerStyle int) error {
	rows := [][]any{historyHeader}
	for _, obs := range history {
		rows = append(rows, []any{
			obs.MonthKey,
			obs.TotalSales.Round(2).InexactFloat64(),
			obs.OrderCount,
			obs.AverageOrderValue.Round(2).InexactFloat64(),
		})
	}

	if err := setRows(f, HistorySheet, rows); err != nil {
		return err
	}

	if err := f.SetCellStyle(HistorySheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("erro ao aplicar estilo: %w", err)
	}

	return f.SetColWidth(HistorySheet, "A", "D", 18)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("erro ao preencher a aba %s: %w", sheet, err)
		}
	}

	return nil
}
