package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env       string
	Port      string
	APIPrefix string
	BaseURL   string
	Version   string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Redis (auth rate limiting; optional)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RateLimitEnabled bool
	RateLimitBurst   int
	RateLimitRefill  time.Duration

	// AMQP (notification events; optional)
	AMQPURL     string
	NotifyQueue string

	// Photo uploads
	UploadDir string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:       getEnv("ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		APIPrefix: getEnv("API_PREFIX", "/api/v1"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),
		Version:   getEnv("APP_VERSION", "1.0.0"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "trashapp"),
		DBPassword: getEnv("DB_PASSWORD", "trashapp"),
		DBName:     getEnv("DB_NAME", "trashapp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Google OAuth
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_CALLBACK_URL", ""),

		// Redis
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RateLimitEnabled: getEnv("RATE_LIMIT_ENABLED", "false") == "true",
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 10),

		// AMQP
		AMQPURL:     getEnv("AMQP_URL", ""),
		NotifyQueue: getEnv("NOTIFY_QUEUE", "notifications"),

		// Uploads
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "1h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 1h\n", expStr)
		expDur = time.Hour
	}
	config.JWTExpirationDur = expDur

	refillStr := getEnv("RATE_LIMIT_REFILL", "6s")
	refillDur, err := time.ParseDuration(refillStr)
	if err != nil {
		log.Printf("Warning: invalid RATE_LIMIT_REFILL value '%s', falling back to 6s\n", refillStr)
		refillDur = 6 * time.Second
	}
	config.RateLimitRefill = refillDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
