package forecasting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

// Formatos aceitos para o timestamp do pedido, do mais específico para o mais simples
var orderTimestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

type monthBucket struct {
	year  int
	month time.Month
	total decimal.Decimal
	count int
}

// ParseOrderTimestamp tenta interpretar o timestamp bruto em cada formato aceito
func ParseOrderTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range orderTimestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp inválido: %q", value)
}

// MonthKey formata o mês no padrão yyyy-mm
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// Aggregate agrupa os pedidos por mês do calendário.
// Meses sem pedidos não aparecem no resultado.
func Aggregate(records []domain.RawOrderRecord) []domain.MonthlyObservation {
	buckets := make(map[string]*monthBucket)

	for _, record := range records {
		occurredAt, err := ParseOrderTimestamp(record.OccurredAt)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"occurred_at": record.OccurredAt,
				"amount":      record.Amount.String(),
			}).Warn("Pedido ignorado na agregação: timestamp inválido")
			continue
		}

		key := MonthKey(occurredAt.Year(), occurredAt.Month())
		bucket, exists := buckets[key]
		if !exists {
			bucket = &monthBucket{
				year:  occurredAt.Year(),
				month: occurredAt.Month(),
				total: decimal.Zero,
			}
			buckets[key] = bucket
		}

		bucket.total = bucket.total.Add(record.Amount)
		bucket.count++
	}

	observations := make([]domain.MonthlyObservation, 0, len(buckets))
	for key, bucket := range buckets {
		aov := decimal.Zero
		if bucket.count > 0 {
			aov = bucket.total.Div(decimal.NewFromInt(int64(bucket.count)))
		}

		observations = append(observations, domain.MonthlyObservation{
			MonthKey:          key,
			Year:              bucket.year,
			Month:             int(bucket.month),
			TotalSales:        bucket.total,
			OrderCount:        bucket.count,
			AverageOrderValue: aov,
		})
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].MonthKey < observations[j].MonthKey
	})

	return observations
}
