package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultSecret = "your-secret-key-change-in-production"

type Config struct {
	Env             string        `env:"ENV" env-default:"local"`
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	Storage         string        `env:"STORAGE" env-default:"postgres"`
	PageSize        int           `env:"PAGE_SIZE" env-default:"10"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	Postgres PostgresConfig
	JWT      JWTConfig
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     int    `env:"POSTGRES_PORT" env-default:"5432"`
	User     string `env:"POSTGRES_USER" env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `env:"POSTGRES_DB" env-default:"taskhub"`
	SSLMode  string `env:"POSTGRES_SSLMODE" env-default:"disable"`
	Migrate  bool   `env:"DB_MIGRATE" env-default:"true"`
}

// DSN returns a pgx-compatible connection URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET" env-default:"your-secret-key-change-in-production"`
	Issuer string `env:"JWT_ISSUER" env-default:"taskhub"`
	// AccessExpiry is the access-token lifespan.
	AccessExpiry  time.Duration `env:"TOKEN_LIFESPAN" env-default:"1h"`
	RefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" env-default:"24h"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		errs = append(errs, fmt.Errorf("unknown env %q", c.Env))
	}

	switch strings.ToLower(c.Storage) {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	} else if c.JWT.Secret == defaultSecret && c.Env == EnvProd {
		errs = append(errs, errors.New("JWT_SECRET must be set in prod"))
	}
	if c.JWT.AccessExpiry <= 0 {
		errs = append(errs, errors.New("TOKEN_LIFESPAN must be positive"))
	}
	if c.JWT.RefreshExpiry <= 0 {
		errs = append(errs, errors.New("JWT_REFRESH_EXPIRY must be positive"))
	}
	if c.PageSize <= 0 {
		errs = append(errs, errors.New("PAGE_SIZE must be positive"))
	}

	return errors.Join(errs...)
}
