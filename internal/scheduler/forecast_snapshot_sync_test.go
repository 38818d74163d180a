package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting/mocks"
	"github.com/vfg2006/sales-forecast-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func TestParseHorizons(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []domain.Horizon
	}{
		{
			name:     "Horizontes válidos mantêm a ordem",
			values:   []string{"12", " 3", "1"},
			expected: []domain.Horizon{12, 3, 1},
		},
		{
			name:     "Inválidos e repetidos são ignorados",
			values:   []string{"3", "2", "abc", "3", ""},
			expected: []domain.Horizon{3},
		},
		{
			name:     "Sem horizontes válidos usa todos",
			values:   []string{"7"},
			expected: domain.AvailableHorizons,
		},
		{
			name:     "Lista vazia usa todos",
			values:   nil,
			expected: domain.AvailableHorizons,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseHorizons(tt.values))
		})
	}
}

func TestForecastSnapshotSyncService_syncSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockForecaster := mocks.NewMockForecaster(ctrl)
	mockSnapshotter := mocks.NewMockSnapshotter(ctrl)
	recorder := metrics.New()

	cfg := &config.Config{
		ForecastSnapshotSync: config.ForecastSnapshotSync{
			CronSchedule: "0 2 * * *",
			Enabled:      true,
			Horizons:     []string{"1", "3"},
		},
	}

	service := NewForecastSnapshotSyncService(mockForecaster, mockSnapshotter, recorder, cfg)

	oneMonth := &domain.ForecastResult{Status: domain.ForecastStatusOK, HorizonMonths: 1}

	// Horizonte de 1 mês é salvo
	mockForecaster.EXPECT().
		GetSalesForecast(gomock.Any(), domain.HorizonOneMonth).
		Return(oneMonth, nil)
	mockSnapshotter.EXPECT().
		SaveSnapshot(gomock.Any(), oneMonth).
		Return(&domain.ForecastSnapshot{ID: "abc123", HorizonMonths: 1}, nil)

	// Horizonte de 3 meses falha na origem e não grava snapshot
	mockForecaster.EXPECT().
		GetSalesForecast(gomock.Any(), domain.HorizonThreeMonths).
		Return(nil, forecasting.NewUpstreamError(config.OrderSourcePostgres, errors.New("timeout")))

	service.syncSnapshots(context.Background())

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, 1, status["last_sync_saved"])
	assert.Equal(t, 1, status["last_sync_failed"])
	assert.Equal(t, []int{1, 3}, status["sync_horizons"])

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.SnapshotsRecorded.WithLabelValues("1", SnapshotOutcomeSaved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.SnapshotsRecorded.WithLabelValues("3", SnapshotOutcomeFailed)))
}

func TestForecastSnapshotSyncService_StartDisabled(t *testing.T) {
	cfg := &config.Config{
		ForecastSnapshotSync: config.ForecastSnapshotSync{
			CronSchedule: "0 2 * * *",
			Enabled:      false,
		},
	}

	service := NewForecastSnapshotSyncService(nil, nil, nil, cfg)

	err := service.Start(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}
