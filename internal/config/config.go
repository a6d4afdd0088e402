// Package config resolves runtime settings for the summarization commands.
// Sources are merged in precedence order: command-line flags, environment
// variables, settings persisted in the database, then an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"pagebrief/models"
	"pagebrief/pkg/provider"
)

// Settings keys persisted in the database.
const (
	SettingProvider = "aiProvider"
	SettingAPIKey   = "apiKey"
)

// ErrMissingCredential reports a hosted provider selected without an API key.
var ErrMissingCredential = errors.New("api key required for the selected provider")

// Config is the fully resolved provider configuration.
type Config struct {
	Provider models.ProviderConfig
}

type envConfig struct {
	Provider string `env:"PAGEBRIEF_PROVIDER"`
	APIKey   string `env:"PAGEBRIEF_API_KEY"`
	BaseURL  string `env:"PAGEBRIEF_BASE_URL"`
	Model    string `env:"PAGEBRIEF_MODEL"`
}

type fileConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
}

// Overrides carries values taken from command-line flags. Empty fields are
// treated as unset.
type Overrides struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// SettingsStore reads persisted settings. Satisfied by *store.Store. A
// missing key is reported as an empty value.
type SettingsStore interface {
	GetSetting(key string) (string, error)
}

// Load resolves the provider configuration. settings and filePath may each
// be empty or nil when that source is unavailable.
func Load(flags Overrides, settings SettingsStore, filePath string) (Config, error) {
	var fromEnv envConfig
	if err := env.Parse(&fromEnv); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	var fromFile fileConfig
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", filePath, err)
		}
	}

	var savedProvider, savedKey string
	if settings != nil {
		var err error
		if savedProvider, err = settings.GetSetting(SettingProvider); err != nil {
			return Config{}, fmt.Errorf("reading saved settings: %w", err)
		}
		if savedKey, err = settings.GetSetting(SettingAPIKey); err != nil {
			return Config{}, fmt.Errorf("reading saved settings: %w", err)
		}
	}

	cfg := Config{Provider: models.ProviderConfig{
		ProviderID: firstNonEmpty(flags.Provider, fromEnv.Provider, savedProvider, fromFile.Provider, provider.IDOllama),
		APIKey:     firstNonEmpty(flags.APIKey, fromEnv.APIKey, savedKey, fromFile.APIKey),
		BaseURL:    firstNonEmpty(flags.BaseURL, fromEnv.BaseURL, fromFile.BaseURL),
		Model:      firstNonEmpty(flags.Model, fromEnv.Model, fromFile.Model),
	}}
	return cfg, nil
}

// Validate checks the resolved configuration against the provider registry.
func (c Config) Validate(registry *provider.Registry) error {
	requires, known := registry.RequiresKey(c.Provider.ProviderID)
	if !known {
		return fmt.Errorf("unknown provider %q", c.Provider.ProviderID)
	}
	if requires && c.Provider.APIKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingCredential, c.Provider.ProviderID)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
