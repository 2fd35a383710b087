package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is required")

const DefaultSystemPrompt = "You are a helpful, friendly AI assistant. Keep responses concise and informative."

// OpenAI groups the completion provider settings.
type OpenAI struct {
	APIKey      string  `env:"OPENAI_API_KEY" env-required:"true"`
	BaseURL     string  `env:"OPENAI_BASE_URL"`
	Model       string  `env:"OPENAI_MODEL" env-default:"gpt-3.5-turbo"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS" env-default:"500"`
	Temperature float32 `env:"OPENAI_TEMPERATURE" env-default:"0.7"`
}

type Chat struct {
	SystemPrompt    string `env:"SYSTEM_PROMPT" env-default:"You are a helpful, friendly AI assistant. Keep responses concise and informative."`
	ModelFilter     string `env:"MODEL_FILTER" env-default:"gpt"`
	MaxPromptTokens int    `env:"MAX_PROMPT_TOKENS" env-default:"0"`
}

type Config struct {
	Port        string `env:"PORT" env-default:"8000"`
	FrontendDir string `env:"FRONTEND_DIR" env-default:"frontend"`

	OpenAI OpenAI
	Chat   Chat
}

// Load reads environment variables, optionally from a .env file if present.
// It fails when the provider credential is missing.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	// cleanenv accepts a variable that is set but empty
	if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
		return Config{}, ErrMissingAPIKey
	}
	return cfg, nil
}
