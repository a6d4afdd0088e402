package provider

import (
	"fmt"
	"strings"

	"pagebrief/models"
)

// Built-in provider identifiers.
const (
	IDOllama    = "ollama"
	IDOpenAI    = "openai"
	IDAnthropic = "anthropic"
	IDGemini    = "gemini"
)

type factory func(cfg models.ProviderConfig) Provider

type registration struct {
	build       factory
	requiresKey bool
}

// Registry maps provider identifiers to constructors. The on-device provider
// is the only one that works without an API key.
type Registry struct {
	order   []string
	entries map[string]registration
}

// NewRegistry returns a registry with all built-in providers registered.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]registration)}
	r.register(IDOllama, false, func(cfg models.ProviderConfig) Provider { return NewOllamaProvider(cfg) })
	r.register(IDOpenAI, true, func(cfg models.ProviderConfig) Provider { return NewOpenAIProvider(cfg) })
	r.register(IDAnthropic, true, func(cfg models.ProviderConfig) Provider { return NewAnthropicProvider(cfg) })
	r.register(IDGemini, true, func(cfg models.ProviderConfig) Provider { return NewGeminiProvider(cfg) })
	return r
}

func (r *Registry) register(id string, requiresKey bool, build factory) {
	r.order = append(r.order, id)
	r.entries[id] = registration{build: build, requiresKey: requiresKey}
}

// IDs lists registered provider identifiers in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// RequiresKey reports whether a provider needs an API key. The second return
// is false for unknown identifiers.
func (r *Registry) RequiresKey(id string) (bool, bool) {
	reg, ok := r.entries[strings.ToLower(id)]
	if !ok {
		return false, false
	}
	return reg.requiresKey, true
}

// Create builds the provider selected by cfg, validating credentials first.
func (r *Registry) Create(cfg models.ProviderConfig) (Provider, error) {
	id := strings.ToLower(cfg.ProviderID)
	reg, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %q (known: %s)", cfg.ProviderID, strings.Join(r.order, ", "))
	}
	if reg.requiresKey && cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: %w", id, ErrMissingAPIKey)
	}
	return reg.build(cfg), nil
}
