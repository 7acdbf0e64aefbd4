// Package llm talks to remote multimodal models and turns their free-text
// replies into classification results.
//
// Providers are selected by name (gemini, openai, anthropic). Every provider
// satisfies Client; Classifier wraps a Client with rate limiting and a reply
// cache and is what the rest of the application uses.
package llm
