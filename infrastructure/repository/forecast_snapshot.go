package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	forecastSnapshotsTable = "forecast_snapshots fs"
)

//go:generate mockgen -source=forecast_snapshot.go -destination=mocks/mock_forecast_snapshot.go -package=mocks

type ForecastSnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.ForecastSnapshot) error
	// ListRecent lista os snapshots mais recentes; horizonMonths zero não filtra
	ListRecent(ctx context.Context, horizonMonths int, limit int) ([]*domain.ForecastSnapshot, error)
}

type forecastSnapshotRepository struct {
	conn postgres.Queryer
}

func NewForecastSnapshotRepository(conn postgres.Queryer) ForecastSnapshotRepository {
	return &forecastSnapshotRepository{
		conn: conn,
	}
}

func buildInsertSnapshotQuery(snapshot *domain.ForecastSnapshot, payload []byte) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert("forecast_snapshots").
		Columns("id", "horizon_months", "period_label", "confidence", "trend", "payload", "generated_at").
		Values(
			snapshot.ID,
			snapshot.HorizonMonths,
			snapshot.PeriodLabel,
			snapshot.Confidence,
			string(snapshot.Trend),
			payload,
			snapshot.GeneratedAt,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildListSnapshotsQuery(horizonMonths int, limit int) (string, []any, error) {
	builder := squirrel.
		Select("fs.id, fs.horizon_months, fs.period_label, fs.confidence, fs.trend, fs.payload, fs.generated_at, fs.created_at").
		From(forecastSnapshotsTable).
		OrderBy("fs.generated_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if horizonMonths > 0 {
		builder = builder.Where(squirrel.Eq{"fs.horizon_months": horizonMonths})
	}

	return builder.ToSql()
}

func (r *forecastSnapshotRepository) Save(ctx context.Context, snapshot *domain.ForecastSnapshot) error {
	payload, err := json.Marshal(snapshot.Forecast)
	if err != nil {
		return fmt.Errorf("erro ao serializar previsão para JSON: %w", err)
	}

	query, args, err := buildInsertSnapshotQuery(snapshot, payload)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&snapshot.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *forecastSnapshotRepository) ListRecent(ctx context.Context, horizonMonths int, limit int) ([]*domain.ForecastSnapshot, error) {
	query, args, err := buildListSnapshotsQuery(horizonMonths, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.ForecastSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot de previsão: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(rows *sql.Rows) (*domain.ForecastSnapshot, error) {
	snapshot := &domain.ForecastSnapshot{}
	var trend string
	var payload []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.HorizonMonths,
		&snapshot.PeriodLabel,
		&snapshot.Confidence,
		&trend,
		&payload,
		&snapshot.GeneratedAt,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	snapshot.Trend = domain.Trend(trend)

	if payload != nil {
		forecast := &domain.ForecastResult{}
		if err := json.Unmarshal(payload, forecast); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de payload: %w", err)
		}
		snapshot.Forecast = forecast
	}

	return snapshot, nil
}
