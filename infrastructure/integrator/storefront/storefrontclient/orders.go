package storefrontclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
	storefrontdomain "github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/domain"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
)

const ordersPath = "/rest/v1/orders"

func (c *StorefrontClient) ListOrders(ctx context.Context, params storefrontdomain.ListOrdersParams) ([]storefrontdomain.Order, error) {
	var response []storefrontdomain.Order

	if err := c.limiter.Wait(ctx); err != nil {
		return response, errors.Wrap(err, "erro ao aguardar limite de requisições")
	}

	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return response, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, ordersPath)

	query := endpoint.Query()
	query.Set("select", "total_amount,created_at")
	query.Set("status", "neq."+domain.OrderStatusCancelled)
	query.Add("created_at", "gte."+params.Since)
	query.Add("created_at", "lt."+params.Until)
	query.Set("order", "created_at.asc")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("apikey", c.config.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if params.Limit > 0 {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", params.Offset, params.Offset+params.Limit-1))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	// 206 indica uma página parcial do resultado
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return response, errors.Errorf("requisição falhou com status: %s: %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return response, nil
}
