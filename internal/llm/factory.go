package llm

import (
	"fmt"
	"strings"
)

// NewClient creates a raw model client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return newGeminiClient(cfg)
	case ProviderOpenAI:
		return newOpenAIClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic}
}
