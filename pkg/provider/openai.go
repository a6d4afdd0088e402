package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"pagebrief/models"
)

const openAIMaxOutputTokens int64 = 2048

// OpenAIProvider calls OpenAI's Responses API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(cfg models.ProviderConfig) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = openai.ChatModelGPT5Mini2025_08_07
	}
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string { return IDOpenAI }

func (p *OpenAIProvider) Summarize(ctx context.Context, req Request) (string, error) {
	return p.respond(ctx, summarizeSystemPrompt(req), "Content:\n"+req.Content)
}

func (p *OpenAIProvider) Chat(ctx context.Context, turns []models.ChatTurn, grounding string) (string, error) {
	return p.respond(ctx, groundedChatPrompt(grounding), flattenTurns(turns))
}

func (p *OpenAIProvider) respond(ctx context.Context, instructions, input string) (string, error) {
	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(openAIMaxOutputTokens),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(input),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", &ProviderError{Provider: IDOpenAI, Status: apierr.StatusCode, Message: apierr.Message}
		}
		return "", fmt.Errorf("openai: do request: %w", err)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", &ProviderError{Provider: IDOpenAI, Message: fmt.Sprintf("output text is missing (status = %s)", resp.Status)}
	}
	return text, nil
}
