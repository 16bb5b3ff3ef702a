package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends selectable through STORE_BACKEND.
const (
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string        `env:"SERVER_PORT" envDefault:"8080"`
	StoreBackend string        `env:"STORE_BACKEND" envDefault:"redis"`
	MySQLDSN     string        `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/parking?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	BoltPath     string        `env:"BOLT_PATH" envDefault:"parking.db"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"change-me"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	NATSURL      string        `env:"NATS_URL"`
	NATSSubject  string        `env:"NATS_SUBJECT" envDefault:"parking.slots"`
	ZonesFile    string        `env:"ZONES_FILE"`
	SwaggerHost  string        `env:"SWAGGER_HOST"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and builds Config from the environment.
func Load() (*Config, error) {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreBackend {
	case BackendRedis, BackendMySQL, BackendBolt, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
