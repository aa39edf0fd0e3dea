// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ViaggioGiappone/trip-planner-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minKeyLength = 8
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
}

// SupabaseConfig holds the connection details for the hosted document store.
type SupabaseConfig struct {
	URL string `mapstructure:"URL"`
	Key string `mapstructure:"KEY"`
	// TimeoutSeconds is the HTTP client timeout for store round trips.
	TimeoutSeconds int `mapstructure:"TIMEOUT_SECONDS"`
}

// TripConfig holds trip-document settings.
type TripConfig struct {
	// DefaultKey is the trip key used when a request does not name one.
	DefaultKey string `mapstructure:"DEFAULT_KEY"`
	// ModifiedBy is the actor stamped into metadata on every save.
	ModifiedBy string `mapstructure:"MODIFIED_BY"`
	// Timezone is the wall-clock zone for the last-modified stamp.
	Timezone string `mapstructure:"TIMEZONE"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER"`
	Supabase SupabaseConfig `mapstructure:"SUPABASE"`
	Trip     TripConfig     `mapstructure:"TRIP"`
}

// IsDevelopment returns true when running in development.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, unmarshals and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SUPABASE.TIMEOUT_SECONDS", 10)
	v.SetDefault("TRIP.DEFAULT_KEY", "default_trip")
	v.SetDefault("TRIP.MODIFIED_BY", "user")
	v.SetDefault("TRIP.TIMEZONE", "Europe/Rome")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SUPABASE.URL", "SUPABASE_URL"},
		{"SUPABASE.KEY", "SUPABASE_KEY"},
		{"SUPABASE.TIMEOUT_SECONDS", "SUPABASE_TIMEOUT_SECONDS"},
		{"TRIP.DEFAULT_KEY", "TRIP_DEFAULT_KEY"},
		{"TRIP.MODIFIED_BY", "TRIP_MODIFIED_BY"},
		{"TRIP.TIMEZONE", "TRIP_TIMEZONE"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"supabase_url_set", v.GetString("SUPABASE.URL") != "",
		"trip_default_key", v.GetString("TRIP.DEFAULT_KEY"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Supabase.URL == "" {
		return fmt.Errorf("supabase URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.Supabase.URL); err != nil {
		return fmt.Errorf("invalid supabase URL: %w", err)
	}
	if len(cfg.Supabase.Key) < minKeyLength {
		return fmt.Errorf("supabase key must be at least %d characters long", minKeyLength)
	}
	if cfg.Supabase.TimeoutSeconds <= 0 {
		return fmt.Errorf("supabase timeout must be positive")
	}

	if cfg.Trip.DefaultKey == "" {
		return fmt.Errorf("trip default key is required")
	}
	if cfg.Trip.ModifiedBy == "" {
		return fmt.Errorf("trip modified-by actor is required")
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
