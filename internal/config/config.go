package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names accepted by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port        int
	FrontendURL string
	Env         string
	LogLevel    string

	// Resilience
	MaxConcurrency int

	// Observability
	OTLPEndpoint string
	ServiceName  string

	// Data
	SeedData                bool
	StrictSubscriptionScope bool
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// ShouldSeed reports whether the development dataset should be loaded at startup.
func (c *Config) ShouldSeed() bool {
	return c.SeedData || c.IsDevelopment()
}

// LoadDotEnv loads a .env file into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3001)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("NODE_ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_CONCURRENCY", 50)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "smart-gastos-api")
	v.SetDefault("SEED_DATA", false)
	v.SetDefault("STRICT_SUBSCRIPTION_SCOPE", false)

	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}

	return &Config{
		Port:        v.GetInt("PORT"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		Env:         env,
		LogLevel:    v.GetString("LOG_LEVEL"),

		MaxConcurrency: v.GetInt("MAX_CONCURRENCY"),

		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  v.GetString("OTEL_SERVICE_NAME"),

		SeedData:                v.GetBool("SEED_DATA"),
		StrictSubscriptionScope: v.GetBool("STRICT_SUBSCRIPTION_SCOPE"),
	}
}
