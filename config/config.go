package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ladderleague/ladder-bot/app/observability"
)

// Config holds the configuration settings for the service.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Addr          string  `yaml:"addr"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Env vars always win.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_DEFAULT_TTL value: %w", err)
		}
		cfg.JWT.DefaultTTL = d
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN not set (config file or DATABASE_URL)")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS URL not set (config file or NATS_URL)")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.RatePerSecond == 0 {
		cfg.HTTP.RatePerSecond = 5
	}
	if cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateBurst = 10
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 24 * time.Hour
	}

	return &cfg, nil
}

// ToObsConfig maps the app config onto the observability provider's.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		Environment: appCfg.Observability.Environment,
		LogLevel:    appCfg.Observability.LogLevel,
	}
}
