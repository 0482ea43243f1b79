package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Storage     string
	Database    DatabaseConfig
	OrderAPI    OrderAPIConfig
	Pricing     PricingConfig
	Admin       AdminConfig
	Redis       RedisConfig
	Events      EventsConfig
	CORS        CORSConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type OrderAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PricingConfig struct {
	StoreCurrency   string
	DisplayCurrency string
	ExchangeRate    decimal.Decimal
	CallingCode     string
}

type AdminConfig struct {
	APIKeyHash string
}

// RedisConfig is optional; an empty Addr and URL disables the cache
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	TTL      time.Duration
}

// EventsConfig is optional; an empty URI disables publishing
type EventsConfig struct {
	RabbitURI string
	Queue     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	orderAPITimeout, err := time.ParseDuration(getEnvOrViper("ORDER_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_API_TIMEOUT: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrViper("REDIS_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	exchangeRate, err := decimal.NewFromString(getEnvOrViper("EXCHANGE_RATE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXCHANGE_RATE: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Storage:     strings.ToLower(getEnvOrViper("STORAGE", "postgres")),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		OrderAPI: OrderAPIConfig{
			BaseURL: getEnvOrViper("ORDER_API_BASE_URL", ""),
			Timeout: orderAPITimeout,
		},
		Pricing: PricingConfig{
			StoreCurrency:   getEnvOrViper("STORE_CURRENCY", "NPR"),
			DisplayCurrency: getEnvOrViper("DISPLAY_CURRENCY", ""),
			ExchangeRate:    exchangeRate,
			CallingCode:     getEnvOrViper("COUNTRY_CALLING_CODE", "+977"),
		},
		Admin: AdminConfig{
			APIKeyHash: getEnvOrViper("ADMIN_API_KEY_HASH", ""),
		},
		Redis: RedisConfig{
			URL:      getEnvOrViper("REDIS_URL", ""),
			Addr:     getEnvOrViper("REDIS_ADDR", ""),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			TTL:      redisTTL,
		},
		Events: EventsConfig{
			RabbitURI: getEnvOrViper("RABBITMQ_URI", ""),
			Queue:     getEnvOrViper("RABBITMQ_ORDER_QUEUE", "orders"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnvOrViper("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.OrderAPI.BaseURL == "" {
		return nil, fmt.Errorf("ORDER_API_BASE_URL is required")
	}
	if cfg.Storage != "postgres" && cfg.Storage != "memory" {
		return nil, fmt.Errorf("STORAGE must be postgres or memory, got %q", cfg.Storage)
	}
	if cfg.Admin.APIKeyHash == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY_HASH is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
