package storefrontclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	storefrontdomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/domain"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ListOrders(ctx context.Context, params storefrontdomain.ListOrdersParams) ([]storefrontdomain.Order, error)
}

type StorefrontClient struct {
	httpClient *http.Client
	config     config.Storefront
	limiter    *rate.Limiter
}

// NewClient cria o cliente da API REST do backend da loja, limitado a RequestsPerSecond
func NewClient(cfg *config.Config) Client {
	rps := cfg.Storefront.RequestsPerSecond
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &StorefrontClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config:  cfg.Storefront,
		limiter: rate.NewLimiter(limit, 1),
	}
}
