package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	DB    DBConfig
	Redis RedisConfig
	Mongo MongoConfig
	Mail  MailConfig
	Pages PageConfig
	Admin AdminConfig
	Login LoginConfig
}

type DBConfig struct {
	Driver      string `env:"DB_DRIVER,       default=postgres"`
	DSN         string `env:"DB_DSN,          default=host=localhost user=bilemo password=bilemo dbname=bilemo port=5432 sslmode=disable"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE, default=true"`
}

// RedisConfig configures the list page cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	PageTTL  time.Duration `env:"REDIS_PAGE_TTL, default=5m"`
}

// MongoConfig configures the audit trail. An empty URI disables it.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=bilemo"`
}

type MailConfig struct {
	Provider       string `env:"MAIL_PROVIDER,    default=log"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	From           string `env:"MAIL_FROM,        default=no-reply@bilemo.local"`
	FromName       string `env:"MAIL_FROM_NAME,   default=BileMo"`
}

// PageConfig holds the default page size of each listing.
type PageConfig struct {
	Clients int `env:"PAGE_LIMIT_CLIENTS, default=5"`
	Mobiles int `env:"PAGE_LIMIT_MOBILES, default=5"`
	Users   int `env:"PAGE_LIMIT_USERS,   default=5"`
}

// AdminConfig seeds the first administrator when none exists.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrator"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// LoginConfig rate-limits POST /api/login per client IP.
type LoginConfig struct {
	Rate  float64 `env:"LOGIN_RATE,  default=1"`
	Burst int     `env:"LOGIN_BURST, default=5"`
}

// Load reads an optional .env file and then the environment. Variables
// already present in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes the configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.Mail.Provider {
	case "log":
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return errors.New("config: SENDGRID_API_KEY is required when MAIL_PROVIDER=sendgrid")
		}
	default:
		return fmt.Errorf("config: unsupported MAIL_PROVIDER %q", c.Mail.Provider)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
