package models

// ProviderConfig selects and authenticates an AI backend. APIKey is required
// for every hosted provider; the on-device provider ignores it.
type ProviderConfig struct {
	ProviderID string `json:"provider" yaml:"provider"`
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint. Mostly useful for the
	// on-device provider when the daemon is not on the default port.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Model overrides the provider's default model.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}
