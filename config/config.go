package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultAccessTokenExpiryHours = 24
	DefaultRateLimitMax           = 10
	DefaultRateLimitWindowMin     = 15
	DefaultBlacklistSweepMin      = 15

	BlacklistBackendPostgres = "postgres"
	BlacklistBackendRedis    = "redis"
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	AccessTokenSecret string
	AccessExpiryHours int

	RateLimitMax       int
	RateLimitWindowMin int

	BlacklistBackend  string
	BlacklistSweepMin int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DBURL:             mustGetEnv("DB_URL"),
		AccessTokenSecret: mustGetEnv("ACCESS_TOKEN_SECRET"),
		AccessExpiryHours: getEnvAsInt("ACCESS_TOKEN_EXPIRY_HOURS", DefaultAccessTokenExpiryHours),

		RateLimitMax:       getEnvAsInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
		RateLimitWindowMin: getEnvAsInt("RATE_LIMIT_WINDOW_MIN", DefaultRateLimitWindowMin),

		BlacklistBackend:  getEnv("BLACKLIST_BACKEND", BlacklistBackendPostgres),
		BlacklistSweepMin: getEnvAsInt("BLACKLIST_SWEEP_MIN", DefaultBlacklistSweepMin),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
