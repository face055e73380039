// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures everything the server needs at startup. Backends are
// optional: with no Postgres DSN the registry runs on in-memory stores, and
// with no Kafka/Redis the notification pipeline falls back to log output.
type Config struct {
	Addr      string `env:"WAYBILL_ADDR" envDefault:":8080"`
	LogFormat string `env:"WAYBILL_LOG_FORMAT" envDefault:"text"`

	// Operator gate. Exactly one mode is active: a bcrypt hash takes
	// precedence, then a plain token, then JWT verification.
	OperatorTokenHash string `env:"WAYBILL_OPERATOR_TOKEN_HASH"`
	OperatorToken     string `env:"WAYBILL_OPERATOR_TOKEN"`
	OperatorJWTKey    string `env:"WAYBILL_OPERATOR_JWT_KEY"`

	PostgresDSN string `env:"WAYBILL_POSTGRES_DSN"`

	Kafka KafkaConfig
	Redis RedisConfig
}

// KafkaConfig controls the Kafka notification publisher.
type KafkaConfig struct {
	Brokers []string `env:"WAYBILL_KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"WAYBILL_KAFKA_TOPIC" envDefault:"waybill.registry.events"`
}

// RedisConfig controls the Redis Stream notification sink.
type RedisConfig struct {
	URL    string `env:"WAYBILL_REDIS_URL"`
	Stream string `env:"WAYBILL_REDIS_STREAM" envDefault:"waybill:registry:events"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// OperatorGateConfigured reports whether any operator credential is set.
// The server refuses to expose mutating routes without one.
func (c Config) OperatorGateConfigured() bool {
	return c.OperatorTokenHash != "" || c.OperatorToken != "" || c.OperatorJWTKey != ""
}
