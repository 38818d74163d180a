package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	OrderSourcePostgres   = "postgres"
	OrderSourceStorefront = "storefront"

	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type Config struct {
	App                  App                  `mapstructure:",squash"`
	Server               Server               `mapstructure:",squash"`
	Database             Database             `mapstructure:",squash"`
	Auth                 Auth                 `mapstructure:",squash"`
	Forecast             Forecast             `mapstructure:",squash"`
	ForecastCache        ForecastCache        `mapstructure:",squash"`
	Redis                Redis                `mapstructure:",squash"`
	Storefront           Storefront           `mapstructure:",squash"`
	ForecastSnapshotSync ForecastSnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Forecast struct {
	LookbackMonths int     `mapstructure:"forecast_lookback_months"`
	VarianceScale  float64 `mapstructure:"forecast_variance_scale"`
	OrderSource    string  `mapstructure:"forecast_order_source"` // postgres ou storefront
}

type ForecastCache struct {
	Driver string        `mapstructure:"forecast_cache_driver"` // none, memory ou redis
	Size   int           `mapstructure:"forecast_cache_size"`
	TTL    time.Duration `mapstructure:"forecast_cache_ttl"`
}

type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type Storefront struct {
	URL               string  `mapstructure:"storefront_url"`
	APIKey            string  `mapstructure:"storefront_api_key"`
	PageSize          int     `mapstructure:"storefront_page_size"`
	RequestsPerSecond float64 `mapstructure:"storefront_requests_per_second"`
}

type ForecastSnapshotSync struct {
	CronSchedule string   `mapstructure:"forecast_snapshot_sync_cron"`
	Enabled      bool     `mapstructure:"forecast_snapshot_sync_enabled"`
	Horizons     []string `mapstructure:"forecast_snapshot_sync_horizons"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/store")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Defaults da previsão de vendas
	viper.SetDefault("FORECAST_LOOKBACK_MONTHS", 24)      // Últimos 2 anos de pedidos
	viper.SetDefault("FORECAST_VARIANCE_SCALE", 10000)    // Escala da penalidade de variância
	viper.SetDefault("FORECAST_ORDER_SOURCE", "postgres") // Origem dos pedidos

	viper.SetDefault("FORECAST_CACHE_DRIVER", "memory")
	viper.SetDefault("FORECAST_CACHE_SIZE", 64)
	viper.SetDefault("FORECAST_CACHE_TTL", "15m")

	viper.SetDefault("REDIS_URL", "localhost:6379")

	viper.SetDefault("STOREFRONT_URL", "")
	viper.SetDefault("STOREFRONT_API_KEY", "")
	viper.SetDefault("STOREFRONT_PAGE_SIZE", 1000)
	viper.SetDefault("STOREFRONT_REQUESTS_PER_SECOND", 5)

	// Defaults para o snapshot diário das previsões
	viper.SetDefault("FORECAST_SNAPSHOT_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("FORECAST_SNAPSHOT_SYNC_ENABLED", false)
	viper.SetDefault("FORECAST_SNAPSHOT_SYNC_HORIZONS", "1,3,6,12")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica as combinações de configuração que impedem a inicialização
func (c *Config) Validate() error {
	switch c.Forecast.OrderSource {
	case OrderSourcePostgres:
	case OrderSourceStorefront:
		if c.Storefront.URL == "" {
			return fmt.Errorf("STOREFRONT_URL é obrigatório quando FORECAST_ORDER_SOURCE=%s", OrderSourceStorefront)
		}
	default:
		return fmt.Errorf("FORECAST_ORDER_SOURCE inválido: %q", c.Forecast.OrderSource)
	}

	switch c.ForecastCache.Driver {
	case CacheDriverNone, CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("FORECAST_CACHE_DRIVER inválido: %q", c.ForecastCache.Driver)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
