// Package llm provides completion-service clients for answer generation.
// Two backends are supported: Google GenAI (default) and any
// OpenAI-compatible chat completions endpoint. The completer receives the
// fixed persona role text, the rendered grounding context, and the user
// question, and returns the model's text verbatim.
package llm

import (
	"context"
	"fmt"
	"strings"

	"trackpulse/internal/logging"
)

// Completer is the capability contract for the completion service.
type Completer interface {
	// Complete submits the persona, grounding context, and user text,
	// returning the answer text verbatim.
	Complete(ctx context.Context, system, groundingContext, user string) (string, error)
}

// Config holds completion client configuration.
type Config struct {
	// Provider: "genai" or "openai" (any OpenAI-compatible endpoint)
	Provider string `yaml:"provider"`

	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"` // openai provider only

	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns sensible defaults: short executive answers,
// low temperature.
func DefaultConfig() Config {
	return Config{
		Provider:    "genai",
		Model:       "gemini-1.5-flash",
		MaxTokens:   2500,
		Temperature: 0.2,
	}
}

// NewCompleter creates a completion client based on configuration.
func NewCompleter(cfg Config) (Completer, error) {
	logging.LLM("creating completion client with provider=%s model=%s", cfg.Provider, cfg.Model)

	switch cfg.Provider {
	case "genai", "gemini":
		return NewGenAIClient(cfg)
	case "openai":
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s (use 'genai' or 'openai')", cfg.Provider)
	}
}

// composeUser joins the grounding context and the user text into a single
// user message. The context comes first so the question reads against it.
func composeUser(groundingContext, user string) string {
	if groundingContext == "" {
		return user
	}
	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(groundingContext)
	b.WriteString("\n\n")
	b.WriteString(user)
	return b.String()
}
