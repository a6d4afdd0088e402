package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pagebrief/models"
)

const (
	ollamaDefaultBaseURL = "http://127.0.0.1:11434"
	ollamaDefaultModel   = "llama3.2"

	// Remediation hint attached to CapabilityError. The /api/chat surface
	// appeared in 0.1.14; older daemons only speak /api/generate.
	ollamaHint = "install Ollama 0.1.14 or newer and start the daemon (`ollama serve`)"
)

// errNoChatAPI marks a daemon that predates the chat interface.
var errNoChatAPI = errors.New("ollama daemon has no /api/chat")

// OllamaProvider is the on-device provider, backed by a local Ollama daemon.
// It prefers the newer chat interface and falls back to the legacy generate
// interface; when neither is reachable it fails with a CapabilityError.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(cfg models.ProviderConfig) *OllamaProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = ollamaDefaultModel
	}
	return &OllamaProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

func (p *OllamaProvider) Name() string { return IDOllama }

// Available probes the daemon. A failed probe is a capability condition, not
// a provider error: the model is simply not there to use.
func (p *OllamaProvider) Available(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.baseURL+"/api/version", nil)
	if err != nil {
		return &CapabilityError{Hint: ollamaHint}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return &CapabilityError{Hint: ollamaHint}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &CapabilityError{Hint: ollamaHint}
	}
	return nil
}

func (p *OllamaProvider) Summarize(ctx context.Context, req Request) (string, error) {
	return p.run(ctx, summarizeSystemPrompt(req), []ollamaMessage{
		{Role: "user", Content: "Content:\n" + req.Content},
	})
}

func (p *OllamaProvider) Chat(ctx context.Context, turns []models.ChatTurn, grounding string) (string, error) {
	messages := make([]ollamaMessage, 0, len(turns))
	for _, turn := range turns {
		if turn.IsError {
			continue
		}
		messages = append(messages, ollamaMessage{Role: turn.Role, Content: turn.Content})
	}
	return p.run(ctx, groundedChatPrompt(grounding), messages)
}

// run executes the availability state machine: probe the daemon, try the
// newer chat interface, then the legacy generate interface. The per-call
// session context is released on every path.
func (p *OllamaProvider) run(ctx context.Context, system string, messages []ollamaMessage) (string, error) {
	if err := p.Available(ctx); err != nil {
		return "", err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	text, err := p.chatCall(sessionCtx, system, messages)
	if errors.Is(err, errNoChatAPI) {
		return p.generateCall(sessionCtx, system, messages)
	}
	return text, err
}

// Ollama API request/response types

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (p *OllamaProvider) chatCall(ctx context.Context, system string, messages []ollamaMessage) (string, error) {
	all := append([]ollamaMessage{{Role: "system", Content: system}}, messages...)
	body, err := json.Marshal(ollamaChatRequest{Model: p.model, Messages: all, Stream: false})
	if err != nil {
		return "", fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	respBody, status, err := p.post(ctx, "/api/chat", body)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", errNoChatAPI
	}

	var apiResp ollamaChatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("ollama: failed to parse response: %w", err)
	}
	if apiResp.Error != "" {
		return "", &ProviderError{Provider: IDOllama, Status: status, Message: apiResp.Error}
	}
	if status != http.StatusOK {
		return "", &ProviderError{Provider: IDOllama, Status: status, Message: http.StatusText(status)}
	}
	return apiResp.Message.Content, nil
}

func (p *OllamaProvider) generateCall(ctx context.Context, system string, messages []ollamaMessage) (string, error) {
	prompt := flattenOllamaMessages(messages)
	body, err := json.Marshal(ollamaGenerateRequest{Model: p.model, System: system, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	respBody, status, err := p.post(ctx, "/api/generate", body)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		// Neither interface exists: the daemon is too old or misconfigured.
		return "", &CapabilityError{Hint: ollamaHint}
	}

	var apiResp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("ollama: failed to parse response: %w", err)
	}
	if apiResp.Error != "" {
		return "", &ProviderError{Provider: IDOllama, Status: status, Message: apiResp.Error}
	}
	if status != http.StatusOK {
		return "", &ProviderError{Provider: IDOllama, Status: status, Message: http.StatusText(status)}
	}
	return apiResp.Response, nil
}

func (p *OllamaProvider) post(ctx context.Context, path string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("ollama: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("ollama: failed to read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

func flattenOllamaMessages(messages []ollamaMessage) string {
	if len(messages) == 1 {
		return messages[0].Content
	}
	var sb strings.Builder
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
