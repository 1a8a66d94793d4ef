package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	APIBase      string
	APIRPS       int
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CORSOrigins  []string
	CacheTTL     time.Duration
	WarmWorkers  int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		APIBase:     env("HBNB_API_BASE", "http://127.0.0.1:5000/api/v1"),
		APIRPS:      atoi("HBNB_API_RPS", 10),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CORSOrigins: splitCSV(env("CORS_ORIGINS", "http://localhost:5173")),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		WarmWorkers: atoi("WARM_WORKERS", 8),
	}
	if c.APIBase == "" {
		log.Warn().Msg("HBNB_API_BASE is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
