package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Accepted values of the selector settings.
const (
	AuthDemo     = "demo"
	AuthPassword = "password"

	SourceSeed  = "seed"
	SourceMongo = "mongo"

	SessionSQLite = "sqlite"
	SessionRedis  = "redis"
	SessionMemory = "memory"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	AuthMode      string        `env:"AUTH_MODE,      default=demo"`
	LoadDelay     time.Duration `env:"LOAD_DELAY,     default=1s"`
	DatasetSource string        `env:"DATASET_SOURCE, default=seed"`

	Session SessionConfig
	Admin   AdminConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Backend    string `env:"SESSION_BACKEND, default=sqlite"`
	Key        string `env:"SESSION_KEY,     default=taskboard.currentUser"`
	SQLitePath string `env:"SQLITE_PATH,     default=taskboard.db"`
}

// AdminConfig enrols a bootstrap admin credential when AUTH_MODE=password.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NeedsMongo reports whether any selected component reads from MongoDB.
func (c *Config) NeedsMongo() bool {
	return c.DatasetSource == SourceMongo || c.AuthMode == AuthPassword
}

// Validate rejects unknown selector values and a missing secret in production.
func (c *Config) Validate() error {
	var errs []error
	if c.AuthMode != AuthDemo && c.AuthMode != AuthPassword {
		errs = append(errs, fmt.Errorf("AUTH_MODE: unknown value %q", c.AuthMode))
	}
	if c.DatasetSource != SourceSeed && c.DatasetSource != SourceMongo {
		errs = append(errs, fmt.Errorf("DATASET_SOURCE: unknown value %q", c.DatasetSource))
	}
	switch c.Session.Backend {
	case SessionSQLite, SessionRedis, SessionMemory:
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND: unknown value %q", c.Session.Backend))
	}
	if c.Session.Key == "" {
		errs = append(errs, errors.New("SESSION_KEY: must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL: must be positive"))
	}
	if c.LoadDelay < 0 {
		errs = append(errs, errors.New("LOAD_DELAY: must not be negative"))
	}
	if c.IsProduction() && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET: required in production"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads and validates configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
