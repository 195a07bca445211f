package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Facility    FacilityConfig    `toml:"facility"`
	Booking     BookingConfig     `toml:"booking"`
	Auth        AuthConfig        `toml:"auth"`
	Payment     PaymentConfig     `toml:"payment"`
	RabbitMQ    RabbitMQConfig    `toml:"rabbitmq"`
	Worker      WorkerConfig      `toml:"worker"`
	UserService UserServiceConfig `toml:"user_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type FacilityConfig struct {
	Timezone string `toml:"timezone"` // IANA, например "Asia/Bangkok"
}

// Location часовой пояс площадки
func (f FacilityConfig) Location() (*time.Location, error) {
	return time.LoadLocation(f.Timezone)
}

type BookingConfig struct {
	PendingTimeoutMinutes int `toml:"pending_timeout_minutes"`
}

// PendingTimeout время жизни неоплаченного бронирования
func (b BookingConfig) PendingTimeout() time.Duration {
	return time.Duration(b.PendingTimeoutMinutes) * time.Minute
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type PaymentConfig struct {
	Enabled   bool   `toml:"enabled"`
	PublicKey string `toml:"public_key"`
	SecretKey string `toml:"secret_key"`
	Currency  string `toml:"currency"`
}

type RabbitMQConfig struct {
	Enabled              bool   `toml:"enabled"`
	URL                  string `toml:"url"`
	NotificationExchange string `toml:"notification_exchange"`
	PaymentExchange      string `toml:"payment_exchange"`
	PaymentQueue         string `toml:"payment_queue"`
}

type WorkerConfig struct {
	ReminderInterval int `toml:"reminder_interval"` // секунды
	SweepInterval    int `toml:"sweep_interval"`    // секунды
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// secrets переопределения из окружения
type secrets struct {
	DBPassword     string `envconfig:"DB_PASSWORD"`
	JWTSecret      string `envconfig:"JWT_SECRET"`
	OmisePublicKey string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey string `envconfig:"OMISE_SECRET_KEY"`
	RabbitURL      string `envconfig:"RABBIT_URL"`
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
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
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:     LogsConfig{Level: "info"},
		Metrics:  MetricsConfig{Path: "/metrics", ServiceName: "facility_booking"},
		Facility: FacilityConfig{Timezone: "UTC"},
		Booking:  BookingConfig{PendingTimeoutMinutes: 30},
		Payment:  PaymentConfig{Currency: "thb"},
		RabbitMQ: RabbitMQConfig{
			NotificationExchange: "booking.exchange",
			PaymentExchange:      "payment.exchange",
			PaymentQueue:         "booking.payment.q",
		},
		Worker:      WorkerConfig{ReminderInterval: 300, SweepInterval: 60},
		UserService: UserServiceConfig{Timeout: 5},
	}
}

func (c *Config) applyEnv() error {
	var s secrets
	if err := envconfig.Process("", &s); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if s.DBPassword != "" {
		c.Database.Password = s.DBPassword
	}
	if s.JWTSecret != "" {
		c.Auth.JWTSecret = s.JWTSecret
	}
	if s.OmisePublicKey != "" {
		c.Payment.PublicKey = s.OmisePublicKey
	}
	if s.OmiseSecretKey != "" {
		c.Payment.SecretKey = s.OmiseSecretKey
	}
	if s.RabbitURL != "" {
		c.RabbitMQ.URL = s.RabbitURL
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d", ErrInvalidConfig, c.Database.Port)
	}
	if _, err := c.Facility.Location(); err != nil {
		return fmt.Errorf("%w: facility.timezone %q: %v", ErrInvalidConfig, c.Facility.Timezone, err)
	}
	if c.Booking.PendingTimeoutMinutes <= 0 {
		return fmt.Errorf("%w: booking.pending_timeout_minutes must be positive", ErrInvalidConfig)
	}
	// Интервал больше окна напоминаний пропускает бронирования без напоминания
	reminderWindow := domain.ReminderWindowEnd - domain.ReminderWindowStart
	if c.Worker.ReminderInterval < 0 || time.Duration(c.Worker.ReminderInterval)*time.Second > reminderWindow {
		return fmt.Errorf("%w: worker.reminder_interval must be within 0..%d seconds",
			ErrInvalidConfig, int(reminderWindow/time.Second))
	}
	if c.Worker.SweepInterval < 0 {
		return fmt.Errorf("%w: worker.sweep_interval must not be negative", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is empty (set JWT_SECRET)", ErrInvalidConfig)
	}
	if c.Payment.Enabled && (c.Payment.PublicKey == "" || c.Payment.SecretKey == "") {
		return fmt.Errorf("%w: payment keys are required when payment is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	return nil
}
