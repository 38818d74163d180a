package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/internal/api/handler"
	"github.com/vfg2006/sales-forecast-api/internal/api/handler/router"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne os serviços expostos pela API
type Dependencies struct {
	Forecaster     forecasting.Forecaster
	Snapshotter    forecasting.Snapshotter
	TokenValidator authenticating.TokenValidator
	CronJobs       handler.CronJobServices
	MetricsHandler http.Handler
	Pingers        map[string]handler.Pinger
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.Forecaster == nil || deps.TokenValidator == nil {
		return nil, fmt.Errorf("previsão e validador de token são obrigatórios")
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, deps),
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
	}, nil
}

// NewHandler monta as rotas e a cadeia de middlewares da API
func NewHandler(config *config.Config, deps Dependencies) http.Handler {
	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(deps.Pingers)...),
		router.WithRoutes(handler.Forecast(deps.Forecaster, deps.Snapshotter)...),
		router.WithRoutes(handler.CronJobs(deps.CronJobs)...),
	}
	if deps.MetricsHandler != nil {
		configs = append(configs, router.WithRoutes(handler.Metrics(deps.MetricsHandler)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(deps.TokenValidator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
