package main

import (
	"log/slog"

	"github.com/Veraticus/waste-wise/internal/config"
	"github.com/Veraticus/waste-wise/internal/engine"
	"github.com/Veraticus/waste-wise/internal/llm"
)

// newClassifier is replaced in tests.
var newClassifier = createClassifier

// createClassifier builds the rate-limited, cached remote classifier for the
// configured provider.
func createClassifier(cfg *config.Config) (engine.RemoteClassifier, error) {
	llmCfg, err := cfg.LLMClientConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := llm.NewClassifier(llmCfg, slog.Default())
	if err != nil {
		return nil, err
	}

	slog.Debug("Created classifier",
		"provider", llmCfg.Provider,
		"model", llmCfg.Model,
		"rate_limit", llmCfg.RateLimit,
		"cache_ttl", llmCfg.CacheTTL)
	return classifier, nil
}
