package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusCancelled = "cancelled"
)

// Valores monetários saem como número no JSON, assim como os campos float da previsão
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RawOrderRecord representa um pedido concluído como entregue pela origem de pedidos
type RawOrderRecord struct {
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt string          `json:"occurred_at"` // Timestamp bruto, validado na agregação
}

// OrderWindow delimita a janela de busca de pedidos [Since, Until)
type OrderWindow struct {
	Since time.Time
	Until time.Time
}

// MonthlyObservation representa o total de vendas de um mês com pelo menos um pedido
type MonthlyObservation struct {
	MonthKey          string          `json:"month_key"` // Formato yyyy-mm
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	OrderCount        int             `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// MonthIndex retorna o índice do mês no calendário (0 = janeiro, 11 = dezembro)
func (o MonthlyObservation) MonthIndex() int {
	return o.Month - 1
}
