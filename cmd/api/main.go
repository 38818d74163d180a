package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-forecast-api/infrastructure/cache"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront"
	"github.com/vfg2006/sales-forecast-api/infrastructure/integrator/storefront/storefrontclient"
	"github.com/vfg2006/sales-forecast-api/infrastructure/migration"
	"github.com/vfg2006/sales-forecast-api/infrastructure/repository"
	"github.com/vfg2006/sales-forecast-api/internal/api"
	"github.com/vfg2006/sales-forecast-api/internal/api/handler"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/scheduler"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
	"github.com/vfg2006/sales-forecast-api/pkg/metrics"
)

func main() {
	changeToSourceDir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Apply(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migração do banco de dados")
		}
	}

	recorder := metrics.New()
	pingers := map[string]handler.Pinger{"postgres": pgConn}

	forecastService := forecasting.NewService(cfg, orderSource(cfg, pgConn), recorder)

	var forecaster forecasting.Forecaster = forecastService
	forecastCache, redisClient := newForecastCache(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	if forecastCache != nil {
		forecaster = forecasting.NewCachedForecaster(forecastService, forecastCache, recorder)
		if pinger, ok := forecastCache.(handler.Pinger); ok {
			pingers["redis"] = pinger
		}
		if memoryCache, ok := forecastCache.(*cache.MemoryForecastCache); ok {
			recorder.RegisterCacheStats(memoryCache.EntriesAndEvictions)
		}
	}

	snapshotRepo := repository.NewForecastSnapshotRepository(pgConn)
	snapshotService := forecasting.NewSnapshotService(snapshotRepo)

	// O snapshot usa o serviço sem cache para registrar o cálculo do momento
	snapshotSyncService := scheduler.NewForecastSnapshotSyncService(forecastService, snapshotService, recorder, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de previsão")
	} else {
		logrus.Info("Agendador de snapshots de previsão iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Forecaster:     forecaster,
		Snapshotter:    snapshotService,
		TokenValidator: authenticating.NewService(cfg),
		CronJobs: handler.CronJobServices{
			ForecastSnapshotSyncService: snapshotSyncService,
		},
		MetricsHandler: recorder.Handler(),
		Pingers:        pingers,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// changeToSourceDir permite encontrar o .env ao rodar com go run
func changeToSourceDir() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
}

// orderSource escolhe a origem dos pedidos configurada
func orderSource(cfg *config.Config, pgConn *postgres.Connection) forecasting.OrderSource {
	switch cfg.Forecast.OrderSource {
	case config.OrderSourceStorefront:
		logrus.WithField("url", cfg.Storefront.URL).Info("Pedidos serão buscados na API do storefront")
		return storefront.New(cfg, storefrontclient.NewClient(cfg))
	default:
		logrus.Info("Pedidos serão buscados no PostgreSQL")
		return repository.NewOrderRepository(pgConn)
	}
}

// newForecastCache cria o cache configurado; retorna nil quando desabilitado
func newForecastCache(ctx context.Context, cfg *config.Config) (forecasting.ForecastCache, *redis.Client) {
	fields := logrus.Fields{
		"driver": cfg.ForecastCache.Driver,
		"ttl":    cfg.ForecastCache.TTL.String(),
	}

	switch cfg.ForecastCache.Driver {
	case config.CacheDriverMemory:
		memoryCache, err := cache.NewMemoryForecastCache(cfg.ForecastCache.Size, cfg.ForecastCache.TTL)
		if err != nil {
			logrus.WithError(err).WithFields(fields).Fatal("Erro ao criar cache de previsões em memória")
		}
		logrus.WithFields(fields).Info("Cache de previsões em memória habilitado")
		return memoryCache, nil

	case config.CacheDriverRedis:
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logrus.WithError(err).WithFields(fields).Fatal("Erro ao conectar ao Redis")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis indisponível na inicialização, previsões serão recalculadas até a conexão voltar")
		}
		logrus.WithFields(fields).Info("Cache de previsões no Redis habilitado")
		return cache.NewRedisForecastCache(client, cfg.ForecastCache.TTL), client

	default:
		logrus.Info("Cache de previsões desabilitado")
		return nil, nil
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
