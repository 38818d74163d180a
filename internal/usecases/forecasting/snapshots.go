package forecasting

import (
	"context"
	"fmt"

	"github.com/vfg2006/sales-forecast-api/infrastructure/repository"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/utils"
)

const (
	DefaultSnapshotLimit = 10
	MaxSnapshotLimit     = 100
)

// SnapshotService registra e lista as previsões calculadas pelo agendador
type SnapshotService struct {
	repo repository.ForecastSnapshotRepository
}

func NewSnapshotService(repo repository.ForecastSnapshotRepository) *SnapshotService {
	return &SnapshotService{
		repo: repo,
	}
}

// SaveSnapshot grava a previsão com um novo identificador
func (s *SnapshotService) SaveSnapshot(ctx context.Context, result *domain.ForecastResult) (*domain.ForecastSnapshot, error) {
	if result == nil {
		return nil, fmt.Errorf("previsão vazia")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do snapshot: %w", err)
	}

	snapshot := &domain.ForecastSnapshot{
		ID:            id,
		HorizonMonths: result.HorizonMonths,
		PeriodLabel:   result.PeriodLabel,
		Confidence:    result.Confidence,
		Trend:         result.Trend,
		Forecast:      result,
		GeneratedAt:   result.GeneratedAt,
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ListSnapshots lista os snapshots mais recentes. Horizonte zero retorna todos os horizontes.
func (s *SnapshotService) ListSnapshots(ctx context.Context, horizon domain.Horizon, limit int) ([]*domain.ForecastSnapshot, error) {
	if horizon != 0 && !horizon.IsValid() {
		return nil, ErrInvalidHorizon
	}

	switch {
	case limit < 0:
		return nil, ErrInvalidLimit
	case limit == 0:
		limit = DefaultSnapshotLimit
	case limit > MaxSnapshotLimit:
		limit = MaxSnapshotLimit
	}

	return s.repo.ListRecent(ctx, int(horizon), limit)
}
