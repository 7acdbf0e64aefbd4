package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantModel string
		wantErr   bool
	}{
		{
			name:      "api key",
			config:    Config{APIKey: "test-key"},
			wantModel: "gemini-1.5-flash",
		},
		{
			name:      "access token and custom model",
			config:    Config{AccessToken: "ya29.token", Model: "gemini-1.5-pro"},
			wantModel: "gemini-1.5-pro",
		},
		{
			name:    "no credentials",
			config:  Config{APIKey: "  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newGeminiClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			gc, ok := client.(*geminiClient)
			require.True(t, ok)
			assert.Equal(t, tt.wantModel, gc.model)
			assert.Len(t, gc.options, 1)
			assert.Equal(t, defaultMaxTokens, gc.maxTokens)
		})
	}
}

func TestNewGeminiClient_Endpoint(t *testing.T) {
	client, err := newGeminiClient(Config{APIKey: "k", BaseURL: "localhost:9999"})
	require.NoError(t, err)
	assert.Len(t, client.(*geminiClient).options, 2)
}

func TestFirstText(t *testing.T) {
	tests := []struct {
		resp *genai.GenerateContentResponse
		name string
		want string
	}{
		{name: "nil response", resp: nil, want: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: ""},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{
					genai.Text("Category: Paper\n"),
					genai.Blob{MIMEType: "image/png"},
					genai.Text("Confidence: 80%"),
				}}},
			}},
			want: "Category: Paper\nConfidence: 80%",
		},
		{
			name: "skips empty candidates",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: nil},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("Unable to classify.")}}},
			}},
			want: "Unable to classify.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstText(tt.resp))
		})
	}
}
