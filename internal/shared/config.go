package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	RedisAddr string
	RedisDB   int
	RedisPass string

	LLMBase  string
	LLMModel string
	LLMKey   string

	FlightsBase string
	HotelsBase  string
	RapidAPIKey string

	CacheTTL      time.Duration
	SweepInterval time.Duration
	SessionIdle   time.Duration
}

func Load() Config {
	// optional .env for local development
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
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		LLMBase:  env("LLM_BASE_URL", "https://api.mistral.ai"),
		LLMModel: env("LLM_MODEL", "mistral-large-latest"),
		LLMKey:   env("LLM_API_KEY", ""),

		FlightsBase: env("FLIGHTS_BASE_URL", "https://booking-com15.p.rapidapi.com"),
		HotelsBase:  env("HOTELS_BASE_URL", "https://booking-com.p.rapidapi.com"),
		RapidAPIKey: env("RAPIDAPI_KEY", ""),

		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SweepInterval: time.Duration(atoi("SWEEP_INTERVAL_SECONDS", 300)) * time.Second,
		SessionIdle:   time.Duration(atoi("SESSION_IDLE_SECONDS", 600)) * time.Second,
	}
	if c.LLMKey == "" {
		log.Warn().Msg("LLM_API_KEY is empty")
	}
	if c.RapidAPIKey == "" {
		log.Warn().Msg("RAPIDAPI_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
