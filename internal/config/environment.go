// Package config provides configuration loading and management for the snipstash application.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"snipstash/pkg/logger"
)

// Config holds environment configuration for the snipstash application.
type Config struct {
	// Port is the port on which the API server listens.
	Port string `env:"SNIPSTASH_PORT" envDefault:"8080"`

	// PostgresURL, when set, takes precedence over the individual Postgres fields.
	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"127.0.0.1"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"snipstash"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// CacheEnabled turns on the redis cache-aside layer in front of Postgres.
	CacheEnabled    bool   `env:"CACHE_ENABLED" envDefault:"false"`
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`
}

// Conf holds the global configuration for the snipstash application.
var Conf Config

func loadDotEnv() {
	// Load .env files into the environment if configured. Existing variables win.
	path := os.Getenv("DOTENV_PATHS")
	if path != "" {
		err := godotenv.Load(strings.Split(path, ",")...)
		if err != nil {
			logger.Fatal(context.Background(), err.Error())
		}
	}
}

// InitConf initializes the global configuration by loading environment variables and .env files.
func InitConf() {
	loadDotEnv()

	if err := env.Parse(&Conf); err != nil {
		logger.Fatal(context.Background(), err.Error())
	}
}
