package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	LogLevel        string // empty: debug in dev, info otherwise
	HTTPAddr        string
	MetricsAddr     string
	APIBaseURL      string
	MapsKey         string
	TokenStore      string // file | redis | memory
	TokenPath       string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	APIRPS          int
	RequestTimeout  time.Duration // zero: requests are never timed out
	NotificationTTL time.Duration
	Workers         int // CLI fan-out
}

// Load reads the environment, after merging an optional .env file from the
// working directory (variables already set win).
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", ""),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		APIBaseURL:      env("HOTELHUB_API_URL", "http://localhost:8000"),
		MapsKey:         env("HOTELHUB_MAPS_KEY", ""),
		TokenStore:      env("TOKEN_STORE", "file"),
		TokenPath:       env("TOKEN_PATH", ""),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		APIRPS:          atoi("API_RPS", 0),
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
		NotificationTTL: time.Duration(atoi("NOTIFICATION_TTL_MS", 4000)) * time.Millisecond,
		Workers:         atoi("WORKERS", 4),
	}
	if c.MapsKey == "" {
		log.Debug().Msg("HOTELHUB_MAPS_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
