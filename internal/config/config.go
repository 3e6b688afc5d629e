package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса, загружается из config.toml
// один раз при старте и передаётся компонентам явно.
type Config struct {
	Server        Server        `toml:"server"`
	Database      Database      `toml:"database"`
	Logs          Logs          `toml:"logs"`
	Metrics       Metrics       `toml:"metrics"`
	Mailer        Mailer        `toml:"mailer"`
	SMSGateway    SMSGateway    `toml:"sms_gateway"`
	Notifications Notifications `toml:"notifications"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки подключения к PostgreSQL
type Database struct {
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

// DSN возвращает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Mailer настройки клиента почтового шлюза
type Mailer struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// SMSGateway настройки клиента SMS шлюза
type SMSGateway struct {
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"` // секунды
	FromNumber string `toml:"from_number"`
}

// Notifications настройки фонового обработчика outbox
type Notifications struct {
	WorkerInterval int `toml:"worker_interval"` // секунды между проходами
	BatchSize      int `toml:"batch_size"`      // задач за проход
	MaxAttempts    int `toml:"max_attempts"`    // попыток до статуса failed
	RetryBaseDelay int `toml:"retry_base_delay"` // миллисекунды, база экспоненциального backoff
}

// Load читает и парсит конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	if c.Notifications.WorkerInterval <= 0 {
		return fmt.Errorf("notifications.worker_interval must be positive")
	}
	if c.Notifications.BatchSize <= 0 {
		return fmt.Errorf("notifications.batch_size must be positive")
	}
	if c.Notifications.MaxAttempts <= 0 {
		return fmt.Errorf("notifications.max_attempts must be positive")
	}
	return nil
}
