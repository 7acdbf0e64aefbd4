package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// geminiClient implements the Client interface for the Gemini API.
type geminiClient struct {
	options     []option.ClientOption
	model       string
	temperature float64
	maxTokens   int
}

// newGeminiClient creates a new Gemini API client. An access token, when
// given, is used instead of the API key.
func newGeminiClient(cfg Config) (Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	token := strings.TrimSpace(cfg.AccessToken)
	if apiKey == "" && token == "" {
		return nil, fmt.Errorf("gemini API key or access token is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}

	var opts []option.ClientOption
	if token != "" {
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		})))
	} else {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	return &geminiClient{
		options:     opts,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.maxTokens(),
	}, nil
}

// ClassifyImage sends the prompt and image to Gemini.
func (c *geminiClient) ClassifyImage(ctx context.Context, req ImageRequest) (string, error) {
	cl, err := genai.NewClient(ctx, c.options...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer func() { _ = cl.Close() }()

	m := cl.GenerativeModel(c.model)
	if m == nil {
		return "", errors.New("gemini: model is nil")
	}
	if c.temperature > 0 {
		m.SetTemperature(float32(c.temperature))
	}
	m.SetMaxOutputTokens(int32(c.maxTokens)) //nolint:gosec // bounded by config

	resp, err := m.GenerateContent(ctx,
		genai.Text(req.Prompt),
		genai.Blob{MIMEType: req.MIMEType, Data: req.Data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}

// firstText joins the text parts of the first candidate that has any.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
