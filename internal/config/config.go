package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Payment  PaymentConfig
	Ledger   LedgerConfig
	Referral ReferralConfig
	Booking  BookingConfig
	Sweep    SweepConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	LogLevel           string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite"
	Connection      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type APIKeys struct {
	JWTSecret string
}

type PaymentConfig struct {
	Mode        string // "midtrans" or "stub"
	ServerKey   string
	ClientKey   string
	Environment string // "sandbox" or "production"
	Currency    string
}

type LedgerConfig struct {
	AllowOverdraft bool
	BalanceTTL     time.Duration
}

type ReferralConfig struct {
	ReferrerPoints int64
	RefereePoints  int64
}

type BookingConfig struct {
	CompletionPoints int64
}

type SweepConfig struct {
	Schedule    string
	LogFilePath string
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("APP_BASE_URL", "http://localhost:3000")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("LOG_FILE_PATH", "app.log")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("REDIS_URL", "")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_CONNECTION_STRING", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")

	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("PAYMENT_MODE", "stub")
	v.SetDefault("MIDTRANS_SERVER_KEY", "")
	v.SetDefault("MIDTRANS_CLIENT_KEY", "")
	v.SetDefault("MIDTRANS_ENV", "sandbox")
	// featured plan prices are whole units of this currency
	v.SetDefault("PAYMENT_CURRENCY", "USD")

	v.SetDefault("LEDGER_ALLOW_OVERDRAFT", false)
	v.SetDefault("LEDGER_BALANCE_TTL", "30s")
	v.SetDefault("REFERRAL_REFERRER_POINTS", 50)
	v.SetDefault("REFERRAL_REFEREE_POINTS", 20)
	v.SetDefault("BOOKING_COMPLETION_POINTS", 100)

	v.SetDefault("SWEEP_SCHEDULE", "@hourly")
	v.SetDefault("SWEEP_LOG_FILE_PATH", "sweep.log")

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("OTEL_SERVICE_NAME", "volunteer-marketplace-be")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from an existing viper instance. Tests use it to
// inject values without touching the environment.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port:               v.GetString("APP_PORT"),
			BaseURL:            v.GetString("APP_BASE_URL"),
			ClientURL:          v.GetString("CLIENT_URL"),
			Environment:        v.GetString("GO_ENV"),
			LogFilePath:        v.GetString("LOG_FILE_PATH"),
			LogLevel:           v.GetString("LOG_LEVEL"),
			CorsAllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
			NatsURL:            v.GetString("NATS_URL"),
			RedisURL:           v.GetString("REDIS_URL"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Connection:      v.GetString("DB_CONNECTION_STRING"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Keys: APIKeys{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		Payment: PaymentConfig{
			Mode:        strings.ToLower(v.GetString("PAYMENT_MODE")),
			ServerKey:   v.GetString("MIDTRANS_SERVER_KEY"),
			ClientKey:   v.GetString("MIDTRANS_CLIENT_KEY"),
			Environment: strings.ToLower(v.GetString("MIDTRANS_ENV")),
			Currency:    strings.ToUpper(v.GetString("PAYMENT_CURRENCY")),
		},
		Ledger: LedgerConfig{
			AllowOverdraft: v.GetBool("LEDGER_ALLOW_OVERDRAFT"),
			BalanceTTL:     v.GetDuration("LEDGER_BALANCE_TTL"),
		},
		Referral: ReferralConfig{
			ReferrerPoints: v.GetInt64("REFERRAL_REFERRER_POINTS"),
			RefereePoints:  v.GetInt64("REFERRAL_REFEREE_POINTS"),
		},
		Booking: BookingConfig{
			CompletionPoints: v.GetInt64("BOOKING_COMPLETION_POINTS"),
		},
		Sweep: SweepConfig{
			Schedule:    v.GetString("SWEEP_SCHEDULE"),
			LogFilePath: v.GetString("SWEEP_LOG_FILE_PATH"),
		},
		Otel: OtelConfig{
			Enabled:     v.GetBool("OTEL_ENABLED"),
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if cfg.App.IsProduction() && cfg.Keys.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}

	switch c.Payment.Mode {
	case "stub":
	case "midtrans":
		if c.Payment.ServerKey == "" {
			return fmt.Errorf("MIDTRANS_SERVER_KEY is required when PAYMENT_MODE=midtrans")
		}
	default:
		return fmt.Errorf("PAYMENT_MODE must be midtrans or stub, got %q", c.Payment.Mode)
	}

	switch c.Payment.Currency {
	case "IDR", "USD":
	default:
		return fmt.Errorf("PAYMENT_CURRENCY must be IDR or USD, got %q", c.Payment.Currency)
	}

	if c.Referral.ReferrerPoints < 0 || c.Referral.RefereePoints < 0 {
		return fmt.Errorf("REFERRAL_REFERRER_POINTS and REFERRAL_REFEREE_POINTS must not be negative")
	}
	if c.Booking.CompletionPoints < 0 {
		return fmt.Errorf("BOOKING_COMPLETION_POINTS must not be negative")
	}
	return nil
}
