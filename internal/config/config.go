package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the gateway's runtime settings. The gateway keeps no state
// of its own, so this is the whole of its environment: where to listen,
// where the SiBuku backend lives, and how cookies should be scoped.
type Config struct {
	HTTPAddr    string
	APIBaseURL  string
	AppURL      string
	Environment string
	ServiceName string
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded configuration from .env")
	}

	return Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":3000"),
		APIBaseURL:  trimBase(getEnv("API_BASE_URL", "http://127.0.0.1:8000")),
		AppURL:      trimBase(getEnv("APP_URL", "http://localhost:3000")),
		Environment: getEnv("APP_ENV", "development"),
		ServiceName: getEnv("SERVICE_NAME", "sibuku-gateway"),
	}
}

// Production reports whether cookies must carry the Secure attribute.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// trimBase drops trailing slashes so joining base+path never doubles them.
func trimBase(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
