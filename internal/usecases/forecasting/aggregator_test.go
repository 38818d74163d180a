package forecasting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func TestAggregate(t *testing.T) {
	t.Run("Agrupa pedidos por mês com total, quantidade e ticket médio", func(t *testing.T) {
		records := []domain.RawOrderRecord{
			order(100, "2024-01-05"),
			order(200, "2024-01-20"),
			order(50, "2024-02-01"),
		}

		result := Aggregate(records)

		require.Len(t, result, 2)

		assert.Equal(t, "2024-01", result[0].MonthKey)
		assert.Equal(t, 2024, result[0].Year)
		assert.Equal(t, 1, result[0].Month)
		assert.True(t, decimal.NewFromInt(300).Equal(result[0].TotalSales))
		assert.Equal(t, 2, result[0].OrderCount)
		assert.True(t, decimal.NewFromInt(150).Equal(result[0].AverageOrderValue))

		assert.Equal(t, "2024-02", result[1].MonthKey)
		assert.True(t, decimal.NewFromInt(50).Equal(result[1].TotalSales))
		assert.Equal(t, 1, result[1].OrderCount)
		assert.True(t, decimal.NewFromInt(50).Equal(result[1].AverageOrderValue))
	})

	t.Run("Ignora timestamps inválidos sem falhar", func(t *testing.T) {
		records := []domain.RawOrderRecord{
			order(100, "2024-03-10T12:00:00Z"),
			order(999, "ontem"),
			order(999, ""),
			order(40, "2024-03-11 09:15:00"),
		}

		result := Aggregate(records)

		require.Len(t, result, 1)
		assert.Equal(t, "2024-03", result[0].MonthKey)
		assert.Equal(t, 2, result[0].OrderCount)
		assert.True(t, decimal.NewFromInt(140).Equal(result[0].TotalSales))
	})

	t.Run("Ordena os meses e não preenche lacunas", func(t *testing.T) {
		records := []domain.RawOrderRecord{
			order(10, "2024-04-01"),
			order(10, "2023-12-31T23:59:59.123456"),
			order(10, "2024-01-15T08:00:00.5Z"),
		}

		result := Aggregate(records)

		require.Len(t, result, 3)
		assert.Equal(t, "2023-12", result[0].MonthKey)
		assert.Equal(t, "2024-01", result[1].MonthKey)
		assert.Equal(t, "2024-04", result[2].MonthKey)
	})

	t.Run("Timestamp com fuso usa o mês local do próprio timestamp", func(t *testing.T) {
		result := Aggregate([]domain.RawOrderRecord{order(10, "2024-01-31T22:00:00-03:00")})

		require.Len(t, result, 1)
		assert.Equal(t, "2024-01", result[0].MonthKey)
	})

	t.Run("Sem pedidos retorna lista vazia", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil))
	})
}

func TestParseOrderTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "RFC3339", value: "2024-01-05T10:00:00Z"},
		{name: "RFC3339 com fração", value: "2024-01-05T10:00:00.123456789+00:00"},
		{name: "Sem fuso com microssegundos", value: "2024-01-05T10:00:00.123456"},
		{name: "Sem fuso", value: "2024-01-05T10:00:00"},
		{name: "Data e hora com espaço", value: "2024-01-05 10:00:00"},
		{name: "Somente data", value: " 2024-01-05 "},
		{name: "Formato brasileiro não é aceito", value: "05/01/2024", wantErr: true},
		{name: "Vazio", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseOrderTimestamp(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2024, parsed.Year())
			assert.Equal(t, 5, parsed.Day())
		})
	}
}
