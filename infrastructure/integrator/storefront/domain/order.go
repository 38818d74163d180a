package domain

import "github.com/shopspring/decimal"

// Order é o pedido como retornado pela API REST do backend da loja
type Order struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   string          `json:"created_at"`
}

type ListOrdersParams struct {
	Since  string
	Until  string
	Offset int
	Limit  int
}
