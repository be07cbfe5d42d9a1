package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Document store: memory or redis
	Store    string
	RedisURL string
	RedisKey string

	// Name the active document was saved under; exports derive their file
	// name from it.
	SaveName string

	// Replace existing export files without asking
	Overwrite bool

	// Translation providers
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	TranslateConcurrency int
	TranslateBatchSize   int
}

// Load reads the environment after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFile is Load with an explicit env file, which must exist.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return fromEnv(), nil
}

func fromEnv() Config {
	cfg := Config{
		Store:    strings.ToLower(envOr("LYRICO_STORE", "memory")),
		RedisURL: os.Getenv("LYRICO_REDIS_URL"),
		RedisKey: envOr("LYRICO_REDIS_KEY", "lyrico"),

		SaveName:  os.Getenv("LYRICO_SAVE_NAME"),
		Overwrite: envBool("LYRICO_OVERWRITE", false),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		TranslateConcurrency: envInt("LYRICO_TRANSLATE_CONCURRENCY", 3),
		TranslateBatchSize:   envInt("LYRICO_TRANSLATE_BATCH_SIZE", 50),
	}

	if cfg.TranslateConcurrency <= 0 {
		cfg.TranslateConcurrency = 3
	}
	if cfg.TranslateBatchSize <= 0 {
		cfg.TranslateBatchSize = 50
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Store {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("LYRICO_REDIS_URL is required when LYRICO_STORE=redis")
		}
	default:
		return fmt.Errorf("LYRICO_STORE must be memory or redis, got %q", c.Store)
	}
	return nil
}

// APIKey returns the configured key for a translation provider.
func (c Config) APIKey(provider string) string {
	switch provider {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	}
	return ""
}

// APIKeyEnv names the variable APIKey reads for provider.
func APIKeyEnv(provider string) string {
	switch provider {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	}
	return "API_KEY"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
