package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" default:"postgresql://postgres@localhost:5432/timecard"`
	JWTSecret     string        `envconfig:"JWT_SECRET" default:"your-super-secret-key-change-in-production"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
	ServerPort    string        `envconfig:"SERVER_PORT" default:"8080"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
