package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Cache
	RedisURI string
	CacheTTL time.Duration

	// Templates
	TemplatesDir string

	// Enhancement API
	GeminiAPIKey      string
	GeminiModel       string
	EnhanceRateLimit  float64
	EnhanceRateBurst  int
	EnhanceMaxRetries int
	EnhanceTimeout    time.Duration
}

// NewConfig creates a new configuration from environment variables
func NewConfig() *Config {
	readTimeoutSec, _ := strconv.Atoi(getEnv("READ_TIMEOUT", "5"))
	writeTimeoutSec, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT", "10"))
	cacheTTLMin, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "60"))
	rateLimit, _ := strconv.ParseFloat(getEnv("ENHANCE_RATE_LIMIT", "10"), 64)
	rateBurst, _ := strconv.Atoi(getEnv("ENHANCE_RATE_BURST", "1"))
	maxRetries, _ := strconv.Atoi(getEnv("ENHANCE_MAX_RETRIES", "3"))
	enhanceTimeoutSec, _ := strconv.Atoi(getEnv("ENHANCE_TIMEOUT", "30"))

	return &Config{
		// Server
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(writeTimeoutSec) * time.Second,

		// Cache
		RedisURI: getEnv("REDIS_URI", ""),
		CacheTTL: time.Duration(cacheTTLMin) * time.Minute,

		// Templates: empty means the embedded catalog is used.
		TemplatesDir: getEnv("TEMPLATES_DIR", ""),

		// Enhancement API
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		EnhanceRateLimit:  rateLimit,
		EnhanceRateBurst:  rateBurst,
		EnhanceMaxRetries: maxRetries,
		EnhanceTimeout:    time.Duration(enhanceTimeoutSec) * time.Second,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
