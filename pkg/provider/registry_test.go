package provider

import (
	"errors"
	"reflect"
	"testing"

	"pagebrief/models"
)

func TestRegistryIDs(t *testing.T) {
	r := NewRegistry()
	want := []string{IDOllama, IDOpenAI, IDAnthropic, IDGemini}
	if got := r.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestRegistryCreate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     models.ProviderConfig
		wantErr error
		wantNil bool
	}{
		{
			name: "ollama needs no key",
			cfg:  models.ProviderConfig{ProviderID: "ollama"},
		},
		{
			name: "hosted provider with key",
			cfg:  models.ProviderConfig{ProviderID: "anthropic", APIKey: "sk-test"},
		},
		{
			name:    "hosted provider without key",
			cfg:     models.ProviderConfig{ProviderID: "openai"},
			wantErr: ErrMissingAPIKey,
			wantNil: true,
		},
		{
			name:    "unknown provider",
			cfg:     models.ProviderConfig{ProviderID: "nonsense"},
			wantNil: true,
		},
		{
			name: "identifier is case-insensitive",
			cfg:  models.ProviderConfig{ProviderID: "Gemini", APIKey: "key"},
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Create(tt.cfg)
			if tt.wantNil {
				if err == nil {
					t.Fatal("Create() error = nil, want error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if p == nil {
				t.Fatal("Create() returned nil provider")
			}
		})
	}
}

func TestRegistryRequiresKey(t *testing.T) {
	r := NewRegistry()

	if needs, ok := r.RequiresKey("ollama"); !ok || needs {
		t.Errorf("RequiresKey(ollama) = %v, %v; want false, true", needs, ok)
	}
	for _, id := range []string{IDOpenAI, IDAnthropic, IDGemini} {
		if needs, ok := r.RequiresKey(id); !ok || !needs {
			t.Errorf("RequiresKey(%s) = %v, %v; want true, true", id, needs, ok)
		}
	}
	if _, ok := r.RequiresKey("nonsense"); ok {
		t.Error("RequiresKey(nonsense) reported a known provider")
	}
}
