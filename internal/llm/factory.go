package llm

import (
	"fmt"
	"strings"
)

// NewClient creates an LLM client based on the provided configuration. An
// empty provider selects Gemini. A positive RateLimit wraps the client in a
// requests-per-minute limiter.
func NewClient(cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		client, err = newGeminiClient(cfg)
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = &limitedClient{client: client, limiter: newRateLimiter(cfg.RateLimit)}
	}
	return client, nil
}
