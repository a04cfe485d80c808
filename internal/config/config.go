package config

import (
	"fmt"
	"strings"
	"time"

	"apotek/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is the storefront configuration.
type Config struct {
	AppPort               string `validate:"required"`
	LogLevel              string `validate:"required"`
	BackendURL            string `validate:"omitempty,url"`
	BackendTimeout        time.Duration
	CartStorageDriver     string `validate:"oneof=memory sqlite postgres"`
	CartStorageDSN        string `validate:"required_unless=CartStorageDriver memory"`
	CartStorageNamespace  string `validate:"required"`
	CheckoutNominalAmount decimal.Decimal
	PaymentDeclineMethods []models.PaymentMethod
	RabbitMQURL           string
	JWTSecret             string
	SessionCookie         string `validate:"required"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BACKEND_URL", "")
	v.SetDefault("BACKEND_TIMEOUT", "0s")
	v.SetDefault("CART_STORAGE_DRIVER", "sqlite")
	v.SetDefault("CART_STORAGE_DSN", "file:cart.db?cache=shared")
	v.SetDefault("CART_STORAGE_NAMESPACE", "pharmacy_cart")
	v.SetDefault("CHECKOUT_NOMINAL_AMOUNT", "100.00")
	v.SetDefault("PAYMENT_DECLINE_METHODS", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_COOKIE", "pharmacy_session")
}

// Load reads an optional .env file and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	amount, err := decimal.NewFromString(v.GetString("CHECKOUT_NOMINAL_AMOUNT"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_NOMINAL_AMOUNT: %w", err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("invalid CHECKOUT_NOMINAL_AMOUNT: must not be negative")
	}

	var declined []models.PaymentMethod
	for _, m := range strings.Split(v.GetString("PAYMENT_DECLINE_METHODS"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			declined = append(declined, models.PaymentMethod(strings.ToLower(m)))
		}
	}

	cfg := &Config{
		AppPort:               v.GetString("APP_PORT"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		BackendURL:            v.GetString("BACKEND_URL"),
		BackendTimeout:        v.GetDuration("BACKEND_TIMEOUT"),
		CartStorageDriver:     strings.ToLower(v.GetString("CART_STORAGE_DRIVER")),
		CartStorageDSN:        v.GetString("CART_STORAGE_DSN"),
		CartStorageNamespace:  v.GetString("CART_STORAGE_NAMESPACE"),
		CheckoutNominalAmount: amount,
		PaymentDeclineMethods: declined,
		RabbitMQURL:           v.GetString("RABBITMQ_URL"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		SessionCookie:         v.GetString("SESSION_COOKIE"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
