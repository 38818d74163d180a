package forecasting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func order(amount int64, occurredAt string) domain.RawOrderRecord {
	return domain.RawOrderRecord{
		Amount:     decimal.NewFromInt(amount),
		OccurredAt: occurredAt,
	}
}

func observation(year, month int, totalSales int64, orderCount int) domain.MonthlyObservation {
	total := decimal.NewFromInt(totalSales)
	aov := decimal.Zero
	if orderCount > 0 {
		aov = total.Div(decimal.NewFromInt(int64(orderCount)))
	}
	return domain.MonthlyObservation{
		MonthKey:          fmt.Sprintf("%04d-%02d", year, month),
		Year:              year,
		Month:             month,
		TotalSales:        total,
		OrderCount:        orderCount,
		AverageOrderValue: aov,
	}
}

// linearYear gera 12 meses de 2023 com vendas de 10.000 a 120.000, dez pedidos por mês
func linearYear() []domain.RawOrderRecord {
	records := make([]domain.RawOrderRecord, 0, 120)
	for month := 1; month <= 12; month++ {
		for i := 0; i < 10; i++ {
			records = append(records, order(int64(1000*month), fmt.Sprintf("2023-%02d-%02dT10:00:00Z", month, i+1)))
		}
	}
	return records
}
