package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func TestBuildListSnapshotsQuery(t *testing.T) {
	tests := []struct {
		name          string
		horizonMonths int
		limit         int
		expectedQuery string
		expectedArgs  []any
	}{
		{
			name:          "Filtra pelo horizonte informado",
			horizonMonths: 3,
			limit:         5,
			expectedQuery: "SELECT fs.id, fs.horizon_months, fs.period_label, fs.confidence, fs.trend, fs.payload, fs.generated_at, fs.created_at FROM forecast_snapshots fs WHERE fs.horizon_months = $1 ORDER BY fs.generated_at DESC LIMIT 5",
			expectedArgs:  []any{3},
		},
		{
			name:          "Horizonte zero não filtra",
			horizonMonths: 0,
			limit:         10,
			expectedQuery: "SELECT fs.id, fs.horizon_months, fs.period_label, fs.confidence, fs.trend, fs.payload, fs.generated_at, fs.created_at FROM forecast_snapshots fs ORDER BY fs.generated_at DESC LIMIT 10",
			expectedArgs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListSnapshotsQuery(tt.horizonMonths, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedQuery, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildInsertSnapshotQuery(t *testing.T) {
	generatedAt := time.Date(2024, 6, 15, 2, 0, 0, 0, time.UTC)
	snapshot := &domain.ForecastSnapshot{
		ID:            "AbC123",
		HorizonMonths: 6,
		PeriodLabel:   "2024-07 a 2024-12",
		Confidence:    81,
		Trend:         domain.TrendIncreasing,
		GeneratedAt:   generatedAt,
	}
	payload := []byte(`{"status":"ok"}`)

	query, args, err := buildInsertSnapshotQuery(snapshot, payload)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO forecast_snapshots (id,horizon_months,period_label,confidence,trend,payload,generated_at) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING created_at",
		query,
	)
	assert.Equal(t, []any{"AbC123", 6, "2024-07 a 2024-12", 81, "increasing", payload, generatedAt}, args)
}
