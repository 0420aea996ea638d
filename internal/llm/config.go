package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a model provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for compatible APIs
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in model choices and retry policy.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads SMARTQUIZ_LLM_PROVIDER and the per-provider
// SMARTQUIZ_<PROVIDER>_API_KEY / _MODEL variables. When no provider is named
// it falls back to discovery over the vendors' own key variables. The second
// result is false when nothing is configured.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()

	setIf(&cfg.Anthropic.APIKey, "SMARTQUIZ_ANTHROPIC_API_KEY")
	setIf(&cfg.Anthropic.Model, "SMARTQUIZ_ANTHROPIC_MODEL")
	setIf(&cfg.OpenAI.APIKey, "SMARTQUIZ_OPENAI_API_KEY")
	setIf(&cfg.OpenAI.Model, "SMARTQUIZ_OPENAI_MODEL")
	setIf(&cfg.OpenAI.BaseURL, "SMARTQUIZ_OPENAI_BASE_URL")
	setIf(&cfg.Gemini.APIKey, "SMARTQUIZ_GEMINI_API_KEY")
	setIf(&cfg.Gemini.Model, "SMARTQUIZ_GEMINI_MODEL")
	setIf(&cfg.OpenRouter.APIKey, "SMARTQUIZ_OPENROUTER_API_KEY")
	setIf(&cfg.OpenRouter.Model, "SMARTQUIZ_OPENROUTER_MODEL")

	if p := os.Getenv("SMARTQUIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg, true
	}
	return discover(cfg)
}

// discover picks the first provider whose standard key variable is set,
// in the order Gemini, OpenAI, Anthropic, OpenRouter.
func discover(cfg Config) (Config, bool) {
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return cfg, false
}

func setIf(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Provider)
	}
	return nil
}
