package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "chatlog.persist", cfg.Queue.Topic)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "en", cfg.Chatbot.DefaultLanguage)
	assert.Equal(t, 200*time.Second, cfg.Chatbot.ResponseCacheTTL)
	assert.Equal(t, 5, cfg.RateLimit.ChatPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.ChatBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CHAT_RATE_PER_MINUTE", "10")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 10, cfg.RateLimit.ChatPerMinute)
	assert.Equal(t, "nats://broker:4222", cfg.Queue.NATSURL)
}

func TestLoad_BadValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("OPENAI_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Database:  DatabaseConfig{Host: "localhost"},
		RateLimit: RateLimitConfig{ChatPerMinute: 5},
	}
	require.NoError(t, cfg.Validate())

	cfg.RateLimit.ChatPerMinute = 0
	assert.Error(t, cfg.Validate())

	cfg.RateLimit.ChatPerMinute = 5
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Name: "portfolio", SSLMode: "disable",
	}.DSN()

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=portfolio sslmode=disable", dsn)
}
