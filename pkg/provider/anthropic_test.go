package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagebrief/models"
)

func TestAnthropicSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("x-api-key = %q", got)
		}
		var req anthropicRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.System, "bullet") {
			t.Error("system prompt does not ask for bullets")
		}
		if !strings.Contains(req.System, "French") {
			t.Error("system prompt does not carry the content language")
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: `{"bullets": ["Un point"]}`}},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider(models.ProviderConfig{
		ProviderID: IDAnthropic,
		APIKey:     "sk-test",
		BaseURL:    srv.URL,
	})
	got, err := p.Summarize(context.Background(), Request{Content: "du texte", Language: "French"})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != `{"bullets": ["Un point"]}` {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestAnthropicAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(anthropicResponse{
			Error: &anthropicError{Type: "authentication_error", Message: "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider(models.ProviderConfig{ProviderID: IDAnthropic, APIKey: "bad", BaseURL: srv.URL})
	_, err := p.Summarize(context.Background(), Request{Content: "text"})

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", provErr.Status)
	}
	if !strings.Contains(provErr.Message, "invalid x-api-key") {
		t.Errorf("Message = %q", provErr.Message)
	}
}

func TestAnthropicChatSkipsErrorTurns(t *testing.T) {
	var captured anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: "answer"}},
		})
	}))
	defer srv.Close()

	p := NewAnthropicProvider(models.ProviderConfig{ProviderID: IDAnthropic, APIKey: "k", BaseURL: srv.URL})
	turns := []models.ChatTurn{
		{Role: models.RoleUser, Content: "first question"},
		{Role: models.RoleAssistant, Content: "provider exploded", IsError: true},
		{Role: models.RoleUser, Content: "second question"},
	}
	if _, err := p.Chat(context.Background(), turns, "the grounding text"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("got %d messages, want 2 (error turn skipped)", len(captured.Messages))
	}
	if !strings.Contains(captured.System, "the grounding text") {
		t.Error("grounding content missing from system prompt")
	}
}
