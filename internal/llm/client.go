package llm

import (
	"context"
	"time"
)

// Client defines the interface for multimodal model providers.
type Client interface {
	// ClassifyImage sends the prompt and image and returns the raw reply text.
	ClassifyImage(ctx context.Context, req ImageRequest) (string, error)
}

// ImageRequest is a single prompt-plus-image request.
type ImageRequest struct {
	Prompt   string
	MIMEType string
	Data     []byte
}

// Config holds configuration for the model provider and the classifier.
type Config struct {
	Provider    string
	APIKey      string
	AccessToken string // gemini only; used instead of APIKey when set
	Model       string
	BaseURL     string
	CacheTTL    time.Duration
	Timeout     time.Duration
	RateLimit   int // requests per minute
	Temperature float64
	MaxTokens   int
}

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 256
)

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}
