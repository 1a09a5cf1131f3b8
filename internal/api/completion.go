package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lol-insight/internal/config"
	"lol-insight/internal/constants"
	"lol-insight/internal/domain"

	"github.com/valyala/fasthttp"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var ErrEmptyCompletion = errors.New("no choices in completion response")

// CompletionClient talks to an OpenAI-compatible chat-completion endpoint.
type CompletionClient struct {
	apiKey     string
	configured bool
	url        string
	model      string
	client     *fasthttp.Client
}

func NewCompletionClient(cfg *config.Config) *CompletionClient {
	return &CompletionClient{
		apiKey:     cfg.CompletionAPIKey,
		configured: cfg.CompletionConfigured(),
		url:        cfg.CompletionURL,
		model:      cfg.CompletionModel,
		client:     newHTTPClient(constants.CompletionAPITimeout),
	}
}

func (c *CompletionClient) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	if !c.configured {
		return "", domain.ErrNotConfigured
	}

	body, err := json.Marshal(ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := doRequest[ChatResponse](ctx, c.client, request{
		method:  fasthttp.MethodPost,
		url:     c.url,
		headers: map[string]string{"Authorization": "Bearer " + c.apiKey},
		body:    body,
	}, constants.CompletionAPITimeout)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
