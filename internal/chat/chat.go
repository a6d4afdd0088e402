// Package chat implements follow-up conversations grounded in the content
// that was last summarized. One long-lived coordinator owns the active
// content identity; switching to different content discards the transcript.
package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"pagebrief/models"
	"pagebrief/pkg/provider"
)

// Coordinator holds the chat state for the currently active content.
type Coordinator struct {
	provider provider.Provider
	logger   *slog.Logger

	mu        sync.Mutex
	sessionID string
	activeKey string
	grounding string
	turns     []models.ChatTurn
}

func NewCoordinator(p provider.Provider, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{provider: p, logger: logger}
}

// SetActive declares which content the chat is about. Changing the content
// identity clears the transcript and starts a fresh session; re-setting the
// same identity keeps the conversation going.
func (c *Coordinator) SetActive(locator, content string) {
	content = models.Truncate(content, models.MaxContentLength)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeKey == locator && c.sessionID != "" {
		c.grounding = content
		return
	}

	c.sessionID = uuid.NewString()
	c.activeKey = locator
	c.grounding = content
	c.turns = nil
	c.logger.Debug("chat session started", "session_id", c.sessionID, "locator", locator)
}

// ActiveLocator returns the content identity the chat is currently bound to.
func (c *Coordinator) ActiveLocator() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeKey
}

// SessionID returns the identifier of the current chat session.
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Turns returns a copy of the transcript in order.
func (c *Coordinator) Turns() []models.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatTurn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Ask appends the user's question, queries the provider with the grounded
// transcript, and appends the reply. Provider failures become error turns in
// the transcript rather than propagating.
func (c *Coordinator) Ask(ctx context.Context, question string) models.ChatTurn {
	c.mu.Lock()
	c.turns = append(c.turns, models.ChatTurn{Role: models.RoleUser, Content: question})
	turns := make([]models.ChatTurn, len(c.turns))
	copy(turns, c.turns)
	grounding := c.grounding
	c.mu.Unlock()

	answer, err := c.provider.Chat(ctx, turns, grounding)

	var reply models.ChatTurn
	if err != nil {
		c.logger.Warn("chat provider call failed", "error", err)
		reply = models.ChatTurn{Role: models.RoleAssistant, Content: err.Error(), IsError: true}
	} else {
		reply = models.ChatTurn{Role: models.RoleAssistant, Content: answer}
	}

	c.mu.Lock()
	c.turns = append(c.turns, reply)
	c.mu.Unlock()
	return reply
}
