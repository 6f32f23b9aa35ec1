// Package generate calls an OpenAI-compatible completion provider to turn a
// rough user request into an optimized prompt.
package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNotConfigured signals that the provider base URL or API key is absent.
// The HTTP layer maps it to 503.
var ErrNotConfigured = errors.New("completion provider is not configured")

// ErrEmptyCompletion signals that the provider answered with no content.
var ErrEmptyCompletion = errors.New("completion provider returned empty content")

// systemPrompt instructs the model to act as a prompt engineer and return
// only the optimized prompt text.
const systemPrompt = `You are an expert prompt engineer specializing in creating revolutionary, optimized prompts for AI systems. Your task is to take a user's basic request and transform it into a sophisticated, highly-effective prompt that will produce exceptional results.

Consider these key principles when crafting prompts:
1. Be specific and detailed
2. Provide context and constraints
3. Specify the desired format and structure
4. Include examples when helpful
5. Use clear, unambiguous language
6. Add role-playing elements when appropriate
7. Break complex tasks into steps
8. Specify tone, style, and audience

Transform the user's input into an optimized prompt that is clear, comprehensive, and designed to elicit the best possible AI response. Return ONLY the optimized prompt text without any preamble or explanation.`

// Config holds provider settings for the generator.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration // defaults to 60s
}

// Generator wraps the completion client. A zero-credential generator is valid
// but reports itself unconfigured and refuses to generate.
type Generator struct {
	client     openai.Client
	model      string
	configured bool
}

// New creates a generator from the provider config.
func New(cfg Config) *Generator {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return &Generator{}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)

	return &Generator{
		client:     client,
		model:      cfg.Model,
		configured: true,
	}
}

// Configured reports whether provider credentials are present.
func (g *Generator) Configured() bool {
	return g.configured
}

// Generate produces an optimized prompt for the user's input. It returns
// ErrNotConfigured without touching the network when credentials are missing,
// and ErrEmptyCompletion when the provider answers with no text.
func (g *Generator) Generate(ctx context.Context, userInput string) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userInput),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	generated := strings.TrimSpace(completion.Choices[0].Message.Content)
	if generated == "" {
		return "", ErrEmptyCompletion
	}
	return generated, nil
}

// UpstreamStatus extracts the provider's HTTP status from a Generate error,
// falling back to 500 for transport-level failures.
func UpstreamStatus(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
