package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"trackpulse/internal/logging"
)

// GenAIClient completes prompts using Google's Gemini API.
type GenAIClient struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// NewGenAIClient creates a Gemini completion client.
func NewGenAIClient(cfg Config) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client:      client,
		model:       model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(cfg.Temperature),
	}, nil
}

// Complete submits the persona, grounding context, and user text.
func (c *GenAIClient) Complete(ctx context.Context, system, groundingContext, user string) (string, error) {
	timer := logging.StartTimer(logging.CategoryLLM, "Complete")
	defer timer.Stop()

	contents := []*genai.Content{
		genai.NewContentFromText(composeUser(groundingContext, user), genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if c.maxTokens > 0 {
		config.MaxOutputTokens = c.maxTokens
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("GenAI completion failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned an empty completion")
	}

	logging.LLMDebug("completion returned %d bytes", len(text))
	return text, nil
}

// Name returns the client name.
func (c *GenAIClient) Name() string {
	return fmt.Sprintf("genai:%s", c.model)
}
