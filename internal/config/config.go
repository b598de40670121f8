package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
)

// Драйверы хранилища и блокировок
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	SlotLockDriverLocal = "local"
	SlotLockDriverRedis = "redis"
)

// Переменные окружения, переопределяющие секреты из файла
const (
	envDBPassword    = "DB_PASSWORD"
	envAdminAPIKey   = "ADMIN_API_KEY"
	envRedisPassword = "REDIS_PASSWORD"
	envAMQPURL       = "AMQP_URL"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Pricing  PricingConfig  `toml:"pricing"`
	Admin    AdminConfig    `toml:"admin"`
	SlotLock SlotLockConfig `toml:"slot_lock"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MaxTxRetries    int    `toml:"max_tx_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver   string `toml:"driver"`
	SeedFile string `toml:"seed_file"` // каталог и клиенты для драйвера memory
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig рабочие часы и окно бронирования
type ScheduleConfig struct {
	Timezone         string `toml:"timezone"`
	LookaheadDays    int    `toml:"lookahead_days"`
	MaxLookaheadDays int    `toml:"max_lookahead_days"`
	OpenHour         int    `toml:"open_hour"`
	CloseHour        int    `toml:"close_hour"`
}

// Location часовой пояс расписания
func (s ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// PricingConfig множители для клиентов-компаний
type PricingConfig struct {
	BusinessPriceMultiplier    string  `toml:"business_price_multiplier"`
	BusinessDurationMultiplier float64 `toml:"business_duration_multiplier"`
}

// Pricing переводит настройки в доменную модель
func (p PricingConfig) Pricing() (domain.Pricing, error) {
	multiplier, err := decimal.NewFromString(p.BusinessPriceMultiplier)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("%w: pricing.business_price_multiplier: %v", ErrInvalidConfig, err)
	}
	return domain.Pricing{
		BusinessPriceMultiplier:    multiplier,
		BusinessDurationMultiplier: p.BusinessDurationMultiplier,
	}, nil
}

// AdminConfig доступ к административным маршрутам
type AdminConfig struct {
	APIKey string `toml:"api_key"`
}

// SlotLockConfig блокировки слотов
type SlotLockConfig struct {
	Driver        string `toml:"driver"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTL           int    `toml:"ttl"`          // секунды
	WaitTimeout   int    `toml:"wait_timeout"` // секунды
}

// EventsConfig публикация событий бронирований в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

// Load читает конфигурацию из файла, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MaxTxRetries:    3,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "sanitation-booking-service",
		},
		Schedule: ScheduleConfig{
			Timezone:         "UTC",
			LookaheadDays:    domain.DefaultLookaheadDays,
			MaxLookaheadDays: domain.MaxLookaheadDays,
			OpenHour:         domain.BusinessOpenHour,
			CloseHour:        domain.BusinessCloseHour,
		},
		Pricing: PricingConfig{
			BusinessPriceMultiplier:    domain.DefaultBusinessPriceMultiplier,
			BusinessDurationMultiplier: domain.DefaultBusinessDurationMultiplier,
		},
		SlotLock: SlotLockConfig{
			Driver:      SlotLockDriverLocal,
			TTL:         10,
			WaitTimeout: 5,
		},
		Events: EventsConfig{Exchange: "bookings"},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envAdminAPIKey); v != "" {
		c.Admin.APIKey = v
	}
	if v := os.Getenv(envRedisPassword); v != "" {
		c.SlotLock.RedisPassword = v
	}
	if v := os.Getenv(envAMQPURL); v != "" {
		c.Events.AMQPURL = v
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("%w: database host, user and dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	s := c.Schedule
	if _, err := s.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}
	if s.LookaheadDays <= 0 || s.MaxLookaheadDays < s.LookaheadDays {
		return fmt.Errorf("%w: schedule.lookahead_days must be positive and not exceed max_lookahead_days", ErrInvalidConfig)
	}
	if s.OpenHour < 0 || s.CloseHour > 23 || s.OpenHour > s.CloseHour {
		return fmt.Errorf("%w: schedule hours must satisfy 0 <= open_hour <= close_hour <= 23", ErrInvalidConfig)
	}

	pricing, err := c.Pricing.Pricing()
	if err != nil {
		return err
	}
	if !pricing.BusinessPriceMultiplier.IsPositive() || pricing.BusinessDurationMultiplier <= 0 {
		return fmt.Errorf("%w: pricing multipliers must be positive", ErrInvalidConfig)
	}

	if c.Admin.APIKey == "" {
		return fmt.Errorf("%w: admin.api_key is required (or %s)", ErrInvalidConfig, envAdminAPIKey)
	}

	switch c.SlotLock.Driver {
	case SlotLockDriverLocal:
	case SlotLockDriverRedis:
		if c.SlotLock.RedisAddr == "" {
			return fmt.Errorf("%w: slot_lock.redis_addr is required for redis driver", ErrInvalidConfig)
		}
		if c.SlotLock.TTL <= 0 {
			return fmt.Errorf("%w: slot_lock.ttl must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown slot_lock.driver %q", ErrInvalidConfig, c.SlotLock.Driver)
	}

	if c.Events.Enabled && (c.Events.AMQPURL == "" || c.Events.Exchange == "") {
		return fmt.Errorf("%w: events.amqp_url and events.exchange are required when events are enabled", ErrInvalidConfig)
	}

	return nil
}
