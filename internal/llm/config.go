package llm

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

// Provider names accepted by GRAND_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Providers lists the names in discovery order.
var Providers = []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter, ProviderMock}

// ErrNotConfigured is returned when no provider is selected and no
// standard API key is present in the environment.
var ErrNotConfigured = errors.New("no LLM provider configured: set GRAND_LLM_PROVIDER or one of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY")

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderMock:       "mock",
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the API endpoint (OpenAI-compatible providers).
	BaseURL string

	Retry RetryConfig

	// Timeout bounds a whole Generate call, retries included.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is used when a Config leaves Retry zero.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// envPrefix is "GRAND_ANTHROPIC" for "anthropic".
func envPrefix(provider string) string {
	return "GRAND_" + strings.ToUpper(provider)
}

// ConfigFromEnv reads GRAND_LLM_PROVIDER and the GRAND_<PROVIDER>_API_KEY,
// _MODEL and _BASE_URL variables. Without GRAND_LLM_PROVIDER the first
// provider with a standard <PROVIDER>_API_KEY set is chosen.
func ConfigFromEnv() (Config, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("GRAND_LLM_PROVIDER")))
	if provider == "" {
		for _, p := range Providers {
			if p != ProviderMock && standardKey(p) != "" {
				provider = p
				break
			}
		}
	}
	if provider == "" {
		return Config{}, ErrNotConfigured
	}

	prefix := envPrefix(provider)
	cfg := Config{
		Provider: provider,
		APIKey:   os.Getenv(prefix + "_API_KEY"),
		Model:    os.Getenv(prefix + "_MODEL"),
		BaseURL:  os.Getenv(prefix + "_BASE_URL"),
		Retry:    DefaultRetry(),
		Timeout:  60 * time.Second,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = standardKey(provider)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[provider]
	}

	return cfg, cfg.Validate()
}

func standardKey(provider string) string {
	return os.Getenv(strings.ToUpper(provider) + "_API_KEY")
}

// Validate checks the provider name and that it has an API key.
func (c Config) Validate() error {
	if !slices.Contains(Providers, c.Provider) {
		return fmt.Errorf("unknown LLM provider %q: must be one of %s", c.Provider, strings.Join(Providers, ", "))
	}
	if c.Provider != ProviderMock && c.APIKey == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", envPrefix(c.Provider), c.Provider)
	}
	return nil
}

// resolveModel maps a short alias to a provider model ID. Unknown names
// pass through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
