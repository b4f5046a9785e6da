package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StorageBackend string
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string
	SupabaseURL    string
	SupabaseKey    string

	// JWTSecret verifies tokens minted by the hosted auth provider. JWTAudience is
	// optional; when set the aud claim must match.
	JWTSecret   string
	JWTAudience string

	HomeCurrency    string
	Locale          string
	FrontendBaseURL string
	RateLimit       string
	RequestTimeout  time.Duration

	AMQPURL      string
	AMQPExchange string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_BACKEND", BackendPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_KEY", "")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_JWT_AUDIENCE", "")
	v.SetDefault("HOME_CURRENCY", "INR")
	v.SetDefault("LOCALE", "en-IN")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "finance.events")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		StorageBackend:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		DatabaseURL:     v.GetString("PGSQL_URL"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		SupabaseURL:     v.GetString("SUPABASE_URL"),
		SupabaseKey:     v.GetString("SUPABASE_KEY"),
		JWTSecret:       v.GetString("AUTH_JWT_SECRET"),
		JWTAudience:     v.GetString("AUTH_JWT_AUDIENCE"),
		HomeCurrency:    strings.ToUpper(strings.TrimSpace(v.GetString("HOME_CURRENCY"))),
		Locale:          v.GetString("LOCALE"),
		FrontendBaseURL: v.GetString("FRONTEND_BASE_URL"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		AMQPURL:         v.GetString("AMQP_URL"),
		AMQPExchange:    v.GetString("AMQP_EXCHANGE"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	timeoutStr := v.GetString("REQUEST_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for REQUEST_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RequestTimeout = timeout

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("PGSQL_URL is required for the postgres backend"))
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if len(c.HomeCurrency) != 3 {
		errs = append(errs, fmt.Errorf("HOME_CURRENCY must be a 3-letter code, got %q", c.HomeCurrency))
	}
	return errors.Join(errs...)
}

// AllowedOrigins splits FRONTEND_BASE_URL on commas.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, 1)
	for _, o := range strings.Split(c.FrontendBaseURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
