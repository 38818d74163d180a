package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	ListCompletedOrders(ctx context.Context, since, until time.Time) ([]domain.RawOrderRecord, error)
}

type orderRepository struct {
	conn postgres.Queryer
}

func NewOrderRepository(conn postgres.Queryer) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// buildCompletedOrdersQuery monta a consulta de pedidos não cancelados em [since, until)
func buildCompletedOrdersQuery(since, until time.Time) (string, []any, error) {
	return squirrel.
		Select("o.total_amount, o.created_at").
		From(ordersTable).
		Where(squirrel.NotEq{"o.status": domain.OrderStatusCancelled}).
		Where(squirrel.GtOrEq{"o.created_at": since}).
		Where(squirrel.Lt{"o.created_at": until}).
		OrderBy("o.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *orderRepository) ListCompletedOrders(ctx context.Context, since, until time.Time) ([]domain.RawOrderRecord, error) {
	query, args, err := buildCompletedOrdersQuery(since, until)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.RawOrderRecord, 0)
	for rows.Next() {
		var amount decimal.NullDecimal
		var createdAt time.Time

		if err := rows.Scan(&amount, &createdAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}

		record := domain.RawOrderRecord{
			Amount:     decimal.Zero,
			OccurredAt: createdAt.Format(time.RFC3339Nano),
		}
		if amount.Valid {
			record.Amount = amount.Decimal
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}
