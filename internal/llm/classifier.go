package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Classifier sends waste images to a model provider. It rate limits outgoing
// requests and caches replies that parse, so resubmitting the same image
// does not cost another request.
type Classifier struct {
	client  Client
	cache   *replyCache
	limiter *rateLimiter
	logger  *slog.Logger
	prompt  string
}

// NewClassifier creates a classifier for the configured provider.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewClassifierWithClient(client, cfg, logger), nil
}

// NewClassifierWithClient wraps an existing client. Only the cache and rate
// limit settings of cfg are used.
func NewClassifierWithClient(client Client, cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client:  client,
		cache:   newReplyCache(cfg.CacheTTL),
		limiter: newRateLimiter(cfg.RateLimit),
		logger:  logger,
		prompt:  ClassificationPrompt,
	}
}

// ClassifyImage returns the model's raw reply for an image.
func (c *Classifier) ClassifyImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	key := imageKey(mimeType, data)
	if reply, found := c.cache.get(key); found {
		c.logger.Debug("cache hit for image", "digest", key[:12])
		return reply, nil
	}

	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := c.client.ClassifyImage(ctx, ImageRequest{
		Prompt:   c.prompt,
		MIMEType: mimeType,
		Data:     data,
	})
	if err != nil {
		return "", err
	}

	_, outcome := ParseReply(reply)
	if outcome == OutcomeParsed {
		c.cache.set(key, reply)
	}

	c.logger.Info("image classified",
		"digest", key[:12],
		"mime_type", mimeType,
		"bytes", len(data),
		"outcome", outcome.String(),
		"duration", time.Since(start))

	return reply, nil
}
