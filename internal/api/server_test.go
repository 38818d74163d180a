package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting/mocks"
	"github.com/vfg2006/sales-forecast-api/pkg/metrics"
	"github.com/vfg2006/sales-forecast-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T, source forecasting.OrderSource) (http.Handler, *authenticating.Service) {
	cfg := &config.Config{
		Auth: config.Auth{Secret: "segredo"},
		Forecast: config.Forecast{
			LookbackMonths: 24,
			OrderSource:    config.OrderSourcePostgres,
		},
	}

	auth := authenticating.NewService(cfg)
	recorder := metrics.New()
	service := forecasting.NewService(cfg, source, recorder).
		WithClock(func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) })

	handler := NewHandler(cfg, Dependencies{
		Forecaster:     service,
		TokenValidator: auth,
		MetricsHandler: recorder.Handler(),
	})

	return handler, auth
}

func TestNewHandler_SalesForecast(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockOrderSource(ctrl)
	source.EXPECT().
		ListCompletedOrders(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawOrderRecord{}, nil)

	handler, auth := newTestHandler(t, source)

	token, err := auth.IssueToken(domain.Claims{UserID: 2, UserRoleID: middleware.RoleSupervisor}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/forecast/sales?horizon=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"no_data"`)
	assert.Contains(t, rec.Body.String(), `"period_label":"Próximo mês"`)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestNewHandler_Authorization(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler, auth := newTestHandler(t, mocks.NewMockOrderSource(ctrl))

	clientToken, err := auth.IssueToken(domain.Claims{UserID: 3, UserRoleID: middleware.RoleClient}, time.Hour)
	require.NoError(t, err)
	supervisorToken, err := auth.IssueToken(domain.Claims{UserID: 2, UserRoleID: middleware.RoleSupervisor}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "Sem token", method: http.MethodGet, path: "/v1/forecast/sales?horizon=3", expectedStatus: http.StatusUnauthorized},
		{name: "Cliente não acessa a previsão", method: http.MethodGet, path: "/v1/forecast/sales?horizon=3", token: clientToken, expectedStatus: http.StatusForbidden},
		{name: "Supervisor não dispara cron", method: http.MethodPost, path: "/v1/cron/forecast-snapshot/run", token: supervisorToken, expectedStatus: http.StatusForbidden},
		{name: "Métricas são públicas", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
