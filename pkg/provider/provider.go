// Package provider gives the pipeline a uniform interface over AI backends:
// three hosted HTTP APIs and one on-device model. Every implementation sends
// the same fixed instruction and hands back the provider's raw text; bullet
// recovery belongs entirely to the normalizer, because providers do not
// reliably emit clean JSON even when asked.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pagebrief/models"
)

const summarizeInstruction = `Summarize the provided content as bullet points.

Rules:
- Extract the substantive content only; strip filler, marketing language and embellishment.
- Be exhaustive for lists, steps and enumerations in the source; do not merge them away.
- Each bullet is one concise factual statement.
- Respond ONLY with JSON in this exact shape, no markdown fences, no extra text:
{"bullets": ["first point", "second point"]}`

const chatInstruction = `You are answering follow-up questions about one specific piece of content.
Ground every answer in the provided content. If the content does not contain
the answer, say so plainly instead of guessing.`

// Request carries the content to summarize. Language, when set, is the
// detected content language; providers ask for the summary in that language.
type Request struct {
	Content  string
	Language string
}

// Provider is a single AI backend.
type Provider interface {
	// Name returns the provider identifier.
	Name() string
	// Summarize sends the fixed instruction plus content and returns the
	// provider's raw text response.
	Summarize(ctx context.Context, req Request) (string, error)
	// Chat answers the latest user turn, grounded in the given content.
	Chat(ctx context.Context, turns []models.ChatTurn, grounding string) (string, error)
}

// ErrMissingAPIKey is returned when a hosted provider is selected without
// credentials.
var ErrMissingAPIKey = errors.New("API key is not set")

// ProviderError reports a non-success response from a hosted backend.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: request failed with status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// CapabilityError means the on-device model is not present or not enabled.
// Hint tells the user how to remedy that.
type CapabilityError struct {
	Hint string
}

func (e *CapabilityError) Error() string {
	return "on-device model unavailable: " + e.Hint
}

// summarizeSystemPrompt appends the language directive to the fixed
// instruction when the content language is known.
func summarizeSystemPrompt(req Request) string {
	if req.Language == "" {
		return summarizeInstruction
	}
	return summarizeInstruction + "\n- Write the bullets in " + req.Language + "."
}

// groundedChatPrompt produces the system prompt for a follow-up chat.
func groundedChatPrompt(grounding string) string {
	return chatInstruction + "\n\nContent:\n" + grounding
}

// flattenTurns renders a chat transcript as a single prompt for backends
// that take one text input rather than a message list. Error turns are
// display artifacts and are skipped.
func flattenTurns(turns []models.ChatTurn) string {
	var sb strings.Builder
	for _, turn := range turns {
		if turn.IsError {
			continue
		}
		switch turn.Role {
		case models.RoleUser:
			sb.WriteString("User: ")
		case models.RoleAssistant:
			sb.WriteString("Assistant: ")
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
