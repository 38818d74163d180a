package forecasting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestSnapshotService_SaveSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockForecastSnapshotRepository(ctrl)

	result := &domain.ForecastResult{
		Status:        domain.ForecastStatusOK,
		PeriodLabel:   "2024-07 a 2024-09",
		HorizonMonths: 3,
		Confidence:    82,
		Trend:         domain.TrendIncreasing,
		GeneratedAt:   time.Date(2024, 6, 15, 2, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *domain.ForecastSnapshot) error {
			assert.Len(t, snapshot.ID, 6)
			assert.Equal(t, 3, snapshot.HorizonMonths)
			assert.Equal(t, "2024-07 a 2024-09", snapshot.PeriodLabel)
			assert.Equal(t, 82, snapshot.Confidence)
			assert.Equal(t, domain.TrendIncreasing, snapshot.Trend)
			assert.Same(t, result, snapshot.Forecast)
			return nil
		})

	snapshot, err := NewSnapshotService(repo).SaveSnapshot(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.GeneratedAt, snapshot.GeneratedAt)
}

func TestSnapshotService_ListSnapshots(t *testing.T) {
	tests := []struct {
		name          string
		horizon       domain.Horizon
		limit         int
		expectedLimit int
		wantErr       error
	}{
		{name: "Limite zero usa o padrão", horizon: domain.HorizonThreeMonths, limit: 0, expectedLimit: DefaultSnapshotLimit},
		{name: "Limite acima do máximo é reduzido", horizon: 0, limit: 1000, expectedLimit: MaxSnapshotLimit},
		{name: "Limite informado é mantido", horizon: domain.HorizonOneMonth, limit: 5, expectedLimit: 5},
		{name: "Limite negativo é inválido", horizon: domain.HorizonOneMonth, limit: -1, wantErr: ErrInvalidLimit},
		{name: "Horizonte fora da lista é inválido", horizon: domain.Horizon(5), limit: 5, wantErr: ErrInvalidHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockForecastSnapshotRepository(ctrl)

			if tt.wantErr == nil {
				repo.EXPECT().
					ListRecent(gomock.Any(), int(tt.horizon), tt.expectedLimit).
					Return([]*domain.ForecastSnapshot{{ID: "abc123"}}, nil)
			}

			snapshots, err := NewSnapshotService(repo).ListSnapshots(context.Background(), tt.horizon, tt.limit)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Len(t, snapshots, 1)
		})
	}
}
