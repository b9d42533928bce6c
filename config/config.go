package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port             string
	DatabaseURL      string
	RedisAddr        string
	TemplateCacheTTL time.Duration
	TemplatePageSize int
	LogMode          string
	CatalogAPIURL    string
	HTTPTimeout      time.Duration
}

// Load reads an optional .env file and then the environment.
// A missing .env is not an error; variables already set take precedence.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)

	return Config{
		Port:             String("APP_PORT", "8080"),
		DatabaseURL:      String("DATABASE_URL", ""),
		RedisAddr:        String("REDIS_ADDR", ""),
		TemplateCacheTTL: Duration("TEMPLATE_CACHE_TTL", 5*time.Minute),
		TemplatePageSize: Int("TEMPLATE_PAGE_SIZE", 100),
		LogMode:          String("LOG_MODE", "development"),
		CatalogAPIURL:    String("CATALOG_API_URL", "http://localhost:8080"),
		HTTPTimeout:      Duration("HTTP_TIMEOUT", 15*time.Second),
	}
}

func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func Int(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// Duration accepts Go duration strings ("30s") or a bare number of seconds.
func Duration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
