package storefront

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	storefrontdomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/domain"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/storefrontclient"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const (
	defaultPageSize = 1000
	maxPages        = 500
)

// ErrPageLimitReached indica que o período tem mais pedidos do que o limite de páginas permite ler
var ErrPageLimitReached = errors.New("limite de páginas atingido ao buscar pedidos")

//go:generate mockgen -source=storefrontclient/client.go -destination=mocks/mock_client.go -package=mocks

type StorefrontIntegrator interface {
	ListCompletedOrders(ctx context.Context, since, until time.Time) ([]domain.RawOrderRecord, error)
}

type StorefrontService struct {
	Client   storefrontclient.Client
	pageSize int
}

func New(cfg *config.Config, client storefrontclient.Client) StorefrontIntegrator {
	pageSize := cfg.Storefront.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &StorefrontService{
		Client:   client,
		pageSize: pageSize,
	}
}

// ListCompletedOrders percorre as páginas da API até receber uma página incompleta
func (s *StorefrontService) ListCompletedOrders(ctx context.Context, since, until time.Time) ([]domain.RawOrderRecord, error) {
	records := make([]domain.RawOrderRecord, 0)

	for page := 0; page < maxPages; page++ {
		params := storefrontdomain.ListOrdersParams{
			Since:  since.UTC().Format(time.RFC3339),
			Until:  until.UTC().Format(time.RFC3339),
			Offset: page * s.pageSize,
			Limit:  s.pageSize,
		}

		orders, err := s.Client.ListOrders(ctx, params)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao buscar pedidos na página %d", page)
		}

		for _, order := range orders {
			records = append(records, domain.RawOrderRecord{
				Amount:     order.TotalAmount,
				OccurredAt: order.CreatedAt,
			})
		}

		if len(orders) < s.pageSize {
			logrus.WithFields(logrus.Fields{
				"pages":  page + 1,
				"orders": len(records),
			}).Debug("Pedidos obtidos do backend da loja")
			return records, nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"max_pages": maxPages,
		"orders":    len(records),
	}).Error("Limite de páginas atingido ao buscar pedidos do backend da loja")

	return nil, ErrPageLimitReached
}
