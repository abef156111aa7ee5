package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Sales     SalesConfig

	// set by Load when TAX_RATE is not a decimal
	taxRateErr error
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Database      string
	Schema        string
	MaxOpenConns  int
	MaxIdleConns  int
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret         string
	AccessExpiry   int // in minutes
	RememberExpiry int // in days
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// SalesConfig holds the values order placement depends on.
type SalesConfig struct {
	TaxRate decimal.Decimal
}

// IsDevelopment reports whether the server runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

// DSN builds a PostgreSQL connection string for the pgx driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema,
	)
}

// Addr returns the host:port pair for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Validate reports configuration that would make the server misbehave.
func (c *Config) Validate() error {
	var errs []error

	if c.taxRateErr != nil {
		errs = append(errs, c.taxRateErr)
	} else if c.Sales.TaxRate.IsNegative() {
		errs = append(errs, fmt.Errorf("TAX_RATE must not be negative, got %s", c.Sales.TaxRate))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.AccessExpiry <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_EXPIRY must be positive"))
	}
	if c.JWT.RememberExpiry <= 0 {
		errs = append(errs, errors.New("JWT_REMEMBER_EXPIRY must be positive"))
	}

	return errors.Join(errs...)
}

func Load() *Config {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 60)
	viper.SetDefault("JWT_REMEMBER_EXPIRY", 30)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("TAX_RATE", "0.09")

	var taxRateErr error
	taxRate, err := decimal.NewFromString(viper.GetString("TAX_RATE"))
	if err != nil {
		taxRateErr = fmt.Errorf("TAX_RATE %q is not a decimal: %w", viper.GetString("TAX_RATE"), err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Database:      viper.GetString("DB_DATABASE"),
			Schema:        viper.GetString("DB_SCHEMA"),
			MaxOpenConns:  viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:  viper.GetInt("DB_MAX_IDLE_CONNS"),
			MigrationsDir: viper.GetString("MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("JWT_SECRET"),
			AccessExpiry:   viper.GetInt("JWT_ACCESS_EXPIRY"),
			RememberExpiry: viper.GetInt("JWT_REMEMBER_EXPIRY"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Sales: SalesConfig{
			TaxRate: taxRate,
		},
		taxRateErr: taxRateErr,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
