package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SlotLedger/internal/domain"
	"github.com/m04kA/SMC-SlotLedger/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "SLOTLEDGER"

// Ledger drivers
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverFile     = "file"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Ledger    LedgerConfig    `toml:"ledger"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	File      FileConfig      `toml:"file"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Services  []ServiceConfig `toml:"services" ignored:"true"`
	Admin     AdminConfig     `toml:"admin"`
	RateLimit RateLimitConfig `toml:"rate_limit" split_words:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // секунды
	RequestTimeout  int `toml:"request_timeout" split_words:"true"`  // секунды, дедлайн обращения к хранилищу
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type LedgerConfig struct {
	Driver string `toml:"driver"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix" split_words:"true"`
}

type FileConfig struct {
	DataDir string `toml:"data_dir" split_words:"true"`
}

// ScheduleConfig рабочее окно владельца расписания
type ScheduleConfig struct {
	Timezone          string `toml:"timezone"`
	Earliest          string `toml:"earliest"` // HH:MM
	Latest            string `toml:"latest"`   // HH:MM
	ReminderLeadHours int    `toml:"reminder_lead_hours" split_words:"true"`
}

// ServiceConfig услуга из каталога
type ServiceConfig struct {
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

type RateLimitConfig struct {
	RPS        float64 `toml:"rps"` // 0 = без ограничения
	Burst      int     `toml:"burst"`
	TrustProxy bool    `toml:"trust_proxy" split_words:"true"` // брать IP клиента из X-Forwarded-For
}

// Load читает config.toml, применяет значения по умолчанию и переменные окружения SLOTLEDGER_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
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
			RequestTimeout:  5,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "slotledger"},
		Ledger:  LedgerConfig{Driver: DriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Addr: "localhost:6379", KeyPrefix: "slotledger"},
		File:  FileConfig{DataDir: "data"},
		Schedule: ScheduleConfig{
			Timezone:          "UTC",
			Earliest:          "05:30",
			Latest:            "18:00",
			ReminderLeadHours: domain.DefaultReminderLeadHours,
		},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}

	switch c.Ledger.Driver {
	case DriverPostgres, DriverRedis, DriverFile:
	default:
		return fmt.Errorf("ledger.driver %q is not supported (postgres, redis, file)", c.Ledger.Driver)
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone %q: %w", c.Schedule.Timezone, err)
	}

	if _, err := c.Schedule.Window(0); err != nil {
		return err
	}

	if c.Schedule.ReminderLeadHours < 0 {
		return fmt.Errorf("schedule.reminder_lead_hours must not be negative")
	}

	seen := make(map[string]struct{}, len(c.Services))
	for _, s := range c.Services {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("services: name is required")
		}
		if s.DurationMinutes < domain.MinDurationMinutes || s.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("services: %q duration_minutes %d out of range", s.Name, s.DurationMinutes)
		}
		key := strings.ToLower(s.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("services: %q declared twice", s.Name)
		}
		seen[key] = struct{}{}
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}

	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс владельца расписания
func (s ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ReminderLead смещение напоминания относительно начала встречи
func (s ScheduleConfig) ReminderLead() time.Duration {
	return time.Duration(s.ReminderLeadHours) * time.Hour
}

// Window рабочее окно с заданной длительностью услуги
func (s ScheduleConfig) Window(durationMinutes int) (domain.ServiceWindow, error) {
	earliest, err := types.TimeString(s.Earliest).MinuteOfDay()
	if err != nil {
		return domain.ServiceWindow{}, fmt.Errorf("schedule.earliest: %w", err)
	}
	latest, err := types.TimeString(s.Latest).MinuteOfDay()
	if err != nil {
		return domain.ServiceWindow{}, fmt.Errorf("schedule.latest: %w", err)
	}

	w := domain.ServiceWindow{
		EarliestMinute:  earliest,
		LatestMinute:    latest,
		DurationMinutes: durationMinutes,
	}
	if err := w.Validate(); err != nil {
		return domain.ServiceWindow{}, fmt.Errorf("schedule: %w", err)
	}
	return w, nil
}

// Catalog каталог услуг с рабочим окном расписания
func (c *Config) Catalog() (*domain.ServiceCatalog, error) {
	w, err := c.Schedule.Window(0)
	if err != nil {
		return nil, err
	}

	durations := make(map[string]int, len(c.Services))
	for _, s := range c.Services {
		durations[s.Name] = s.DurationMinutes
	}
	return domain.NewServiceCatalog(w.EarliestMinute, w.LatestMinute, durations), nil
}
