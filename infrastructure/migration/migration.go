package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// TxRunner executa uma função dentro de uma transação
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Statements lista o DDL das tabelas mantidas por este serviço.
// A tabela orders pertence ao sistema de pedidos e não é criada aqui.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS forecast_snapshots (
		id             VARCHAR(32) PRIMARY KEY,
		horizon_months SMALLINT    NOT NULL CHECK (horizon_months IN (1, 3, 6, 12)),
		period_label   TEXT        NOT NULL,
		confidence     SMALLINT    NOT NULL,
		trend          VARCHAR(16) NOT NULL,
		payload        JSONB       NOT NULL,
		generated_at   TIMESTAMPTZ NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_forecast_snapshots_horizon_generated
		ON forecast_snapshots (horizon_months, generated_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_forecast_snapshots_generated
		ON forecast_snapshots (generated_at DESC)`,
}

// Apply aplica todo o DDL em uma única transação
func Apply(ctx context.Context, runner TxRunner) error {
	startTime := time.Now()
	logrus.WithField("statements", len(Statements)).Info("Iniciando migração do banco de dados")

	err := runner.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("erro ao executar migração %d/%d: %w", i+1, len(Statements), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Migração do banco de dados concluída")
	return nil
}
