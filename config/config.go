package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Queue     QueueConfig
	OpenAI    OpenAIConfig
	Chatbot   ChatbotConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// CacheTTL bounds the staleness window for cached project queries.
	CacheTTL time.Duration
}

type QueueConfig struct {
	// NATSURL points at the JetStream broker used for chat-log jobs.
	// Empty means the in-process queue (useful for local development).
	NATSURL string
	Topic   string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type ChatbotConfig struct {
	// DefaultLanguage is used when detection is ambiguous.
	DefaultLanguage string
	// ResponseCacheTTL is how long identical queries are served from cache.
	ResponseCacheTTL time.Duration
	// HashPepper is mixed into response-cache keys so raw visitor
	// messages never appear in redis.
	HashPepper string
}

type RateLimitConfig struct {
	// ChatPerMinute is the sustained rate allowed per session on /chat.
	ChatPerMinute int
	ChatBurst     int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "portfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Queue: QueueConfig{
			NATSURL: getEnv("NATS_URL", ""),
			Topic:   getEnv("QUEUE_TOPIC", "chatlog.persist"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		Chatbot: ChatbotConfig{
			DefaultLanguage:  getEnv("CHATBOT_DEFAULT_LANGUAGE", "en"),
			ResponseCacheTTL: getEnvAsDuration("CHATBOT_RESPONSE_CACHE_TTL", 200*time.Second),
			HashPepper:       getEnv("HASH_PEPPER", "default_pepper_value"),
		},
		RateLimit: RateLimitConfig{
			ChatPerMinute: getEnvAsInt("CHAT_RATE_PER_MINUTE", 5),
			ChatBurst:     getEnvAsInt("CHAT_RATE_BURST", 5),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.RateLimit.ChatPerMinute <= 0 {
		return fmt.Errorf("CHAT_RATE_PER_MINUTE must be positive")
	}

	return nil
}

// DSN builds a keyword/value connection string from the database section.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
