package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pagebrief/models"
)

const (
	anthropicEndpoint     = "https://api.anthropic.com/v1/messages"
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-3-5-haiku-latest"
	anthropicMaxTokens    = 2048
)

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewAnthropicProvider(cfg models.ProviderConfig) *AnthropicProvider {
	model := cfg.Model
	if model == "" {
		model = anthropicDefaultModel
	}
	endpoint := anthropicEndpoint
	if cfg.BaseURL != "" {
		endpoint = strings.TrimSuffix(cfg.BaseURL, "/") + "/v1/messages"
	}
	return &AnthropicProvider{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Anthropic API request/response types

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (p *AnthropicProvider) Name() string { return IDAnthropic }

func (p *AnthropicProvider) Summarize(ctx context.Context, req Request) (string, error) {
	return p.call(ctx, summarizeSystemPrompt(req), []anthropicMessage{
		{Role: "user", Content: "Content:\n" + req.Content},
	})
}

func (p *AnthropicProvider) Chat(ctx context.Context, turns []models.ChatTurn, grounding string) (string, error) {
	messages := make([]anthropicMessage, 0, len(turns))
	for _, turn := range turns {
		if turn.IsError {
			continue
		}
		messages = append(messages, anthropicMessage{Role: turn.Role, Content: turn.Content})
	}
	return p.call(ctx, groundedChatPrompt(grounding), messages)
}

func (p *AnthropicProvider) call(ctx context.Context, system string, messages []anthropicMessage) (string, error) {
	reqBody := anthropicRequest{
		Model:     p.model,
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages:  messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("anthropic: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("anthropic: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic: failed to read response: %w", err)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("anthropic: failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return "", &ProviderError{Provider: IDAnthropic, Status: resp.StatusCode, Message: apiResp.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: IDAnthropic, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if len(apiResp.Content) == 0 {
		return "", &ProviderError{Provider: IDAnthropic, Message: "empty response"}
	}

	return apiResp.Content[0].Text, nil
}
