package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AppName prefixes the durable storage keys used by sessions.
	AppName string `env:"APP_NAME, default=navyk"`

	// AuthMode selects the credential verifier: "mock" accepts any
	// non-empty pair (demo portals), "mongo" checks the identity store.
	AuthMode string `env:"AUTH_MODE, default=mock"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=2h"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	RefreshWindow   time.Duration `env:"SESSION_REFRESH_WINDOW,   default=10m"`
	InactivityLimit time.Duration `env:"SESSION_INACTIVITY_LIMIT, default=30m"`
	CheckInterval   time.Duration `env:"SESSION_CHECK_INTERVAL,   default=1m"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,        default=60s"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX,           default=100"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=navyk_security"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// The JWT secret has no default on purpose: an unset secret is a startup
// error, never a silent fallback.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return &cfg, nil
}
