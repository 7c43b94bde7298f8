package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DBName       string
	JWTSecret    string
	JWTExpiresIn string
	GeminiAPIKey string
	GeminiAPIURL string
	Port         string
	GinMode      string
	CORSOrigins  []string

	// Upload limits
	MaxFileSize  int64
	MaxImageSize int64

	// Pipeline tuning
	MaxChunkSize  int
	MaxQuizChunks int

	// Remote caller retry policy
	GeminiMaxRetries int
	GeminiRetryDelay int // milliseconds
	GeminiTimeout    int // seconds

	BcryptCost int

	// Redis rate limiting
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RateLimitReqs   int
	RateLimitWindow int

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string

	// Study event reminder scan interval (minutes)
	ReminderInterval int
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017/study_quiz"),
		DBName:       getEnv("DB_NAME", "study_quiz"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getEnv("JWT_EXPIRES_IN", "24h"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"),
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		CORSOrigins:  strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),

		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 10485760), // 10MB upload cap
		MaxImageSize: getEnvInt64("MAX_IMAGE_SIZE", 5242880), // 5MB image cap

		MaxChunkSize:  getEnvInt("MAX_CHUNK_SIZE", 2000),
		MaxQuizChunks: getEnvInt("MAX_QUIZ_CHUNKS", 1),

		GeminiMaxRetries: getEnvInt("GEMINI_MAX_RETRIES", 3),
		GeminiRetryDelay: getEnvInt("GEMINI_RETRY_DELAY_MS", 1000),
		GeminiTimeout:    getEnvInt("GEMINI_TIMEOUT", 30),

		BcryptCost: getEnvInt("BCRYPT_COST", 12),

		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),

		ReminderInterval: getEnvInt("REMINDER_INTERVAL_MINUTES", 15),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required - set it in .env file")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
