package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pet-ai.backend/internal/config"
	domainerrors "pet-ai.backend/internal/domain/errors"
)

const requestTimeout = 60 * time.Second

// Message is a single turn in a chat completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionClient produces a model reply for a conversation history
type CompletionClient interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// OpenRouterClient calls the OpenRouter chat completions API
type OpenRouterClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	temperature float64
	appName     string
	referer     string
}

// NewOpenRouterClient creates a new OpenRouter client. appName and referer are
// sent as X-Title and HTTP-Referer for OpenRouter's app attribution.
func NewOpenRouterClient(cfg config.OpenRouterConfig, appName, referer string) *OpenRouterClient {
	return &OpenRouterClient{
		httpClient:  &http.Client{Timeout: requestTimeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		appName:     appName,
		referer:     referer,
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation to the model and returns the reply text
func (c *OpenRouterClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.appName != "" {
		req.Header.Set("X-Title", c.appName)
	}
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domainerrors.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamBadResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", domainerrors.ErrUpstreamBadResponse
	}
	return parsed.Choices[0].Message.Content, nil
}
