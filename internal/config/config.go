package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла.
// Имена выводятся из полей: BOOKING_<SECTION>_<KEY>, без поиска по голому имени ключа.
const EnvPrefix = "BOOKING"

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Redis               RedisConfig               `toml:"redis"`
	RabbitMQ            RabbitMQConfig            `toml:"rabbitmq"`
	SubscriptionService SubscriptionServiceConfig `toml:"subscription_service" split_words:"true"`
	PaymentProvider     PaymentProviderConfig     `toml:"payment_provider" split_words:"true"`
	Reaper              ReaperConfig              `toml:"reaper"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// RedisConfig кэш решений Subscription Gate. Пустой Addr отключает кэш.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds" split_words:"true"`
}

// RabbitMQConfig публикация событий бронирования. Пустой URL отключает публикацию.
type RabbitMQConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// SubscriptionServiceConfig внешний сервис подписок (таймаут в секундах)
type SubscriptionServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// PaymentProviderConfig платежный провайдер
type PaymentProviderConfig struct {
	URL           string `toml:"url"`
	Timeout       int    `toml:"timeout"`
	KeyID         string `toml:"key_id" split_words:"true"`
	WebhookSecret string `toml:"webhook_secret" split_words:"true"`
	Currency      string `toml:"currency"`
}

// ReaperConfig периодическая очистка просроченных холдов
type ReaperConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds" split_words:"true"`
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения BOOKING_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "shop-booking",
		},
		Redis:               RedisConfig{TTLSeconds: 60},
		RabbitMQ:            RabbitMQConfig{Exchange: "booking.events"},
		SubscriptionService: SubscriptionServiceConfig{Timeout: 5},
		PaymentProvider:     PaymentProviderConfig{Timeout: 10, Currency: "THB"},
		Reaper:              ReaperConfig{Enabled: true, IntervalSeconds: 60},
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host, user and dbname are required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}
	if c.Reaper.Enabled && c.Reaper.IntervalSeconds <= 0 {
		return fmt.Errorf("%w: reaper.interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.SubscriptionService.URL == "" {
		return fmt.Errorf("%w: subscription_service.url is required", ErrInvalidConfig)
	}
	return nil
}
