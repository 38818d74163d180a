package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
)

const (
	SnapshotOutcomeSaved  = "saved"
	SnapshotOutcomeFailed = "failed"
)

// SnapshotMetrics recebe o resultado de cada snapshot gravado
type SnapshotMetrics interface {
	IncSnapshot(horizonMonths int, outcome string)
}

// ForecastSnapshotSyncConfig representa a configuração do agendador de snapshots
type ForecastSnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Horizons     []domain.Horizon
}

// ForecastSnapshotSyncService calcula periodicamente a previsão de cada horizonte e grava um snapshot
type ForecastSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              ForecastSnapshotSyncConfig
	forecaster          forecasting.Forecaster
	snapshotter         forecasting.Snapshotter
	metrics             SnapshotMetrics
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSaved       int
	lastSyncFailed      int
}

// NewForecastSnapshotSyncService cria uma nova instância do serviço de snapshots de previsão
func NewForecastSnapshotSyncService(
	forecaster forecasting.Forecaster,
	snapshotter forecasting.Snapshotter,
	metrics SnapshotMetrics,
	appConfig *config.Config,
) *ForecastSnapshotSyncService {
	syncConfig := ForecastSnapshotSyncConfig{
		CronSchedule: appConfig.ForecastSnapshotSync.CronSchedule,
		SyncEnabled:  appConfig.ForecastSnapshotSync.Enabled,
		Horizons:     parseHorizons(appConfig.ForecastSnapshotSync.Horizons),
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"horizons":      syncConfig.Horizons,
	}).Info("Configuração do agendador de snapshots de previsão carregada")

	return &ForecastSnapshotSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		forecaster:  forecaster,
		snapshotter: snapshotter,
		metrics:     metrics,
	}
}

// parseHorizons converte os horizontes configurados, ignorando os inválidos.
// Sem nenhum horizonte válido, usa todos os horizontes aceitos.
func parseHorizons(values []string) []domain.Horizon {
	horizons := make([]domain.Horizon, 0, len(values))
	seen := make(map[domain.Horizon]bool)

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		horizon, err := domain.ParseHorizon(value)
		if err != nil {
			logrus.WithField("horizon", value).Warn("Horizonte inválido na configuração de snapshots, ignorando")
			continue
		}

		if seen[horizon] {
			continue
		}
		seen[horizon] = true
		horizons = append(horizons, horizon)
	}

	if len(horizons) == 0 {
		return append([]domain.Horizon{}, domain.AvailableHorizons...)
	}

	return horizons
}

// Start inicia o agendador
func (s *ForecastSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Snapshots de previsão desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de previsão")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshots de previsão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de previsão")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshots grava um snapshot por horizonte configurado
func (s *ForecastSnapshotSyncService) syncSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de previsões já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	saved, failed := 0, 0

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncSaved = saved
		s.lastSyncFailed = failed
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.WithField("horizons", s.config.Horizons).Info("Iniciando snapshot das previsões de vendas")

	for _, horizon := range s.config.Horizons {
		if err := s.snapshotHorizon(ctx, horizon); err != nil {
			failed++
			s.incSnapshot(horizon, SnapshotOutcomeFailed)
			logrus.WithError(err).WithField("horizon", int(horizon)).Error("Erro ao gravar snapshot de previsão")
			continue
		}
		saved++
		s.incSnapshot(horizon, SnapshotOutcomeSaved)
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"saved":    saved,
		"failed":   failed,
	}).Info("Snapshot das previsões de vendas concluído")
}

func (s *ForecastSnapshotSyncService) snapshotHorizon(ctx context.Context, horizon domain.Horizon) error {
	result, err := s.forecaster.GetSalesForecast(ctx, horizon)
	if err != nil {
		return fmt.Errorf("erro ao calcular previsão: %w", err)
	}

	snapshot, err := s.snapshotter.SaveSnapshot(ctx, result)
	if err != nil {
		return fmt.Errorf("erro ao salvar snapshot: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"horizon":     int(horizon),
		"status":      result.Status,
		"confidence":  result.Confidence,
	}).Info("Snapshot de previsão salvo com sucesso")

	return nil
}

func (s *ForecastSnapshotSyncService) incSnapshot(horizon domain.Horizon, outcome string) {
	if s.metrics != nil {
		s.metrics.IncSnapshot(int(horizon), outcome)
	}
}

// TriggerManualSync inicia manualmente o snapshot das previsões
func (s *ForecastSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de previsões já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando snapshot manual das previsões")
	go s.syncSnapshots(context.Background())
}

// GetStatus retorna o status atual da sincronização
func (s *ForecastSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	horizons := make([]int, 0, len(s.config.Horizons))
	for _, horizon := range s.config.Horizons {
		horizons = append(horizons, int(horizon))
	}

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"sync_horizons":          horizons,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_saved":        s.lastSyncSaved,
		"last_sync_failed":       s.lastSyncFailed,
	}
}
