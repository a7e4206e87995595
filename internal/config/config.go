package config

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	// Admin dashboard credentials. The password is compared as a sha256 hex
	// digest so the plaintext never sticks around after Load.
	AdminUsername     string
	AdminPasswordHash string
	AdminJWTSecret    string
	AdminTokenTTL     time.Duration

	// LLM providers for the chat assistant.
	AWSRegion        string
	BedrockModelID   string
	GeminiAPIKey     string
	GeminiModelID    string
	LLMTimeout       time.Duration
	LLMMaxTokens     int
	ChatHistoryLimit int
	CompanyPhone     string
	CORSAllowedHosts string
	RateLimitPerSec  float64
	RateLimitBurst   int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: sha256Hex(getEnv("ADMIN_PASSWORD", "admin123")),
		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:     getEnvAsDuration("ADMIN_TOKEN_TTL", 24*time.Hour),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		BedrockModelID:   getEnv("BEDROCK_MODEL_ID", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:    getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		LLMTimeout:       getEnvAsDuration("LLM_TIMEOUT", 20*time.Second),
		LLMMaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1024),
		ChatHistoryLimit: getEnvAsInt("CHAT_HISTORY_LIMIT", 10),
		CompanyPhone:     getEnv("COMPANY_PHONE", "(501) 575-5189"),
		CORSAllowedHosts: getEnv("CORS_ALLOWED_ORIGINS", ""),
		RateLimitPerSec:  getEnvAsFloat("RATE_LIMIT_PER_SEC", 10),
		RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 30),
	}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
