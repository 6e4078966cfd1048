package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultPort        = "8080"
	defaultRunTokenTTL = 2 * time.Hour
	defaultSiteURL     = "http://localhost:8080"
)

type Settings struct {
	Environment    string
	Port           string
	ContentDir     string
	ContentStrict  bool
	DatabaseDriver string
	DatabaseDSN    string
	RunTokenTTL    time.Duration
	SiteURL        string
	CorsOrigins    []string
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first when present.
func Load() Settings {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		Logger.WithError(err).Warn("Failed to read .env file")
	}

	env := strings.ToLower(envOrDefault("APP_ENV", EnvDevelopment))
	s := Settings{
		Environment:    env,
		Port:           envOrDefault("PORT", defaultPort),
		ContentDir:     os.Getenv("CONTENT_DIR"),
		DatabaseDriver: strings.ToLower(envOrDefault("DATABASE_DRIVER", DriverNone)),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		RunTokenTTL:    envDuration("RUN_TOKEN_TTL", defaultRunTokenTTL),
		SiteURL:        strings.TrimRight(envOrDefault("SITE_URL", defaultSiteURL), "/"),
		CorsOrigins:    envList("CORS_ORIGINS", []string{"*"}),
	}
	s.ContentStrict = envBool("CONTENT_STRICT", !s.IsProduction())
	return s
}

func (s Settings) IsProduction() bool {
	return s.Environment == EnvProduction
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		Logger.WithField("key", key).Warnf("Invalid boolean %q, using %t", raw, fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		Logger.WithField("key", key).Warnf("Invalid duration %q, using %s", raw, fallback)
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
