// Package llm adapts chat-completion APIs to the content generator port.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"listingpilot/internal/domain"
	"listingpilot/internal/usecases"
)

const (
	rateLimiterBurst = 2
	temperature      = 0.4
)

// Config holds the connection settings for an OpenAI-compatible API.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	RateLimitRPS float64
	HTTPClient   *http.Client
}

// OpenAIGenerator produces listing JSON with the chat completions endpoint.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

func NewOpenAIGenerator(cfg Config) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	limit := rate.Inf
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
	}
	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		limiter: rate.NewLimiter(limit, rateLimiterBurst),
	}
}

func (g *OpenAIGenerator) Model() string { return g.model }

// Generate sends one chat completion in JSON mode and returns the raw text.
// Errors wrap one of the domain.ErrUpstream* kinds.
func (g *OpenAIGenerator) Generate(ctx context.Context, req usecases.GenerationRequest) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", classifyWait(ctx, err))
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", classify(ctx, err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices: %w", domain.ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify keeps err in the chain and adds the matching domain kind.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(domain.ErrUpstreamTimeout, err)
	}
	if kind := kindForStatus(statusCode(err)); kind != nil {
		return errors.Join(kind, err)
	}
	return errors.Join(domain.ErrUpstreamUnavailable, err)
}

// classifyWait treats a limiter refusal under a deadline as a timeout. The
// limiter fails early when the wait would outlast the deadline, before ctx
// itself expires.
func classifyWait(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return classify(ctx, err)
	}
	if _, ok := ctx.Deadline(); ok {
		return errors.Join(domain.ErrUpstreamTimeout, err)
	}
	return classify(ctx, err)
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUpstreamAuth
	case http.StatusTooManyRequests:
		return domain.ErrUpstreamRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return domain.ErrUpstreamTimeout
	case 0:
		return nil
	default:
		return domain.ErrUpstreamUnavailable
	}
}
