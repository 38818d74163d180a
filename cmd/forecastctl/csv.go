package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

func readOrdersFile(path string) ([]domain.RawOrderRecord, error) {
	if path == "-" {
		return readOrders(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo de pedidos: %w", err)
	}
	defer f.Close()

	return readOrders(f)
}

// readOrders lê linhas amount,occurred_at. Linhas com valor inválido são ignoradas;
// timestamps inválidos seguem para a agregação, que também os ignora.
func readOrders(r io.Reader) ([]domain.RawOrderRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records := make([]domain.RawOrderRecord, 0)
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao ler CSV de pedidos: %w", err)
		}
		line++

		if len(row) < 2 {
			logrus.WithField("line", line).Warn("Linha do CSV sem as colunas amount e occurred_at, ignorando")
			continue
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "amount") {
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row[0]))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"line":   line,
				"amount": row[0],
			}).Warn("Valor de pedido inválido no CSV, ignorando")
			continue
		}

		records = append(records, domain.RawOrderRecord{
			Amount:     amount,
			OccurredAt: strings.TrimSpace(row[1]),
		})
	}

	return records, nil
}
