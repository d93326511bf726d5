package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every knob the worker reads from the environment.
// It is built once in main and passed into each component.
type Config struct {
	CryptoPanicKey string
	CryptoPanicURL string

	LLMProvider  string
	OpenAIKey    string
	AnthropicKey string

	GeminiKey   string
	GeminiModel string

	TelegramToken  string
	TelegramChatID int64

	RedisURL string
	SeenFile string

	PollInterval time.Duration
	FetchLimit   int

	EnableHealth bool
	HealthPort   int
}

// Load reads the worker configuration from environment variables,
// applying the documented defaults for anything unset.
func Load() *Config {
	return &Config{
		CryptoPanicKey: strings.TrimSpace(os.Getenv("CRYPTOPANIC_KEY")),
		CryptoPanicURL: getEnv("CP_API_URL", "https://cryptopanic.com/api/v1/posts/"),

		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		OpenAIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		AnthropicKey: strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),

		GeminiKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID: getInt64("TELEGRAM_CHAT_ID", 0),

		RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),
		SeenFile: getEnv("SEEN_FILE", "/tmp/seen_ids.json"),

		PollInterval: time.Duration(getInt("POLL_SECONDS", 180)) * time.Second,
		FetchLimit:   getInt("MAX_FETCH_LIMIT", 15),

		EnableHealth: getBool("ENABLE_HEALTH", false),
		HealthPort:   getInt("PORT", 10000),
	}
}

// MissingRequired lists credentials the worker cannot post without.
// The caller logs them and keeps running degraded.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.CryptoPanicKey == "" {
		missing = append(missing, "CRYPTOPANIC_KEY")
	}
	switch c.LLMProvider {
	case "anthropic":
		if c.AnthropicKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		if c.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}
	if c.TelegramToken == "" || c.TelegramChatID == 0 {
		missing = append(missing, "TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID")
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	switch strings.TrimSpace(v) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
