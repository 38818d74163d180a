package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storefrontdomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/domain"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/mocks"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"go.uber.org/mock/gomock"
)

func TestStorefrontService_ListCompletedOrders(t *testing.T) {
	since := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cfg := &config.Config{Storefront: config.Storefront{PageSize: 2}}

	t.Run("Percorre as páginas até receber uma página incompleta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		gomock.InOrder(
			client.EXPECT().
				ListOrders(gomock.Any(), storefrontdomain.ListOrdersParams{
					Since: "2022-06-01T00:00:00Z", Until: "2024-06-15T00:00:00Z", Offset: 0, Limit: 2,
				}).
				Return([]storefrontdomain.Order{
					{TotalAmount: decimal.NewFromInt(100), CreatedAt: "2024-01-05"},
					{TotalAmount: decimal.NewFromInt(200), CreatedAt: "2024-01-20"},
				}, nil),
			client.EXPECT().
				ListOrders(gomock.Any(), storefrontdomain.ListOrdersParams{
					Since: "2022-06-01T00:00:00Z", Until: "2024-06-15T00:00:00Z", Offset: 2, Limit: 2,
				}).
				Return([]storefrontdomain.Order{
					{TotalAmount: decimal.NewFromInt(50), CreatedAt: "2024-02-01"},
				}, nil),
		)

		records, err := New(cfg, client).ListCompletedOrders(context.Background(), since, until)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "2024-02-01", records[2].OccurredAt)
		assert.True(t, decimal.NewFromInt(50).Equal(records[2].Amount))
	})

	t.Run("Erro em qualquer página interrompe a busca", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		client.EXPECT().
			ListOrders(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("conexão recusada"))

		records, err := New(cfg, client).ListCompletedOrders(context.Background(), since, until)
		require.Error(t, err)
		assert.Nil(t, records)
		assert.Contains(t, err.Error(), "conexão recusada")
	})

	t.Run("Falha quando o limite de páginas é atingido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		fullPage := []storefrontdomain.Order{
			{TotalAmount: decimal.NewFromInt(10), CreatedAt: "2024-01-05"},
			{TotalAmount: decimal.NewFromInt(20), CreatedAt: "2024-01-06"},
		}
		client.EXPECT().
			ListOrders(gomock.Any(), gomock.Any()).
			Return(fullPage, nil).
			Times(maxPages)

		records, err := New(cfg, client).ListCompletedOrders(context.Background(), since, until)
		require.ErrorIs(t, err, ErrPageLimitReached)
		assert.Nil(t, records)
	})
}
