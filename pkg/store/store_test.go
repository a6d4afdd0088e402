package store

import (
	"reflect"
	"testing"

	"pagebrief/models"
)

// setupTestStore creates an in-memory SQLite store for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s := &Store{path: ":memory:"}
	var err error
	s.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := s.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return s
}

func TestSummaryRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	tests := []struct {
		name   string
		key    string
		result models.SummaryResult
	}{
		{
			name:   "bullets result",
			key:    "https://example.com/article",
			result: models.SummaryResult{Bullets: []string{"first", "second"}},
		},
		{
			name:   "error result",
			key:    "https://example.com/broken",
			result: models.SummaryResult{Error: "fetch failure: status code 404"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.PutSummary(tt.key, tt.result); err != nil {
				t.Fatalf("PutSummary() error = %v", err)
			}
			got, ok, err := s.GetSummary(tt.key)
			if err != nil {
				t.Fatalf("GetSummary() error = %v", err)
			}
			if !ok {
				t.Fatal("GetSummary() reported a miss after put")
			}
			if !reflect.DeepEqual(got, tt.result) {
				t.Errorf("GetSummary() = %+v, want %+v", got, tt.result)
			}
		})
	}
}

func TestGetSummaryMiss(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	_, ok, err := s.GetSummary("https://example.com/never-seen")
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if ok {
		t.Error("GetSummary() reported a hit for an absent key")
	}
}

func TestPutSummaryOverwrites(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	key := "https://example.com/page"
	if err := s.PutSummary(key, models.SummaryResult{Bullets: []string{"old"}}); err != nil {
		t.Fatalf("PutSummary() error = %v", err)
	}
	if err := s.PutSummary(key, models.SummaryResult{Bullets: []string{"new"}}); err != nil {
		t.Fatalf("PutSummary() error = %v", err)
	}

	got, ok, err := s.GetSummary(key)
	if err != nil || !ok {
		t.Fatalf("GetSummary() = %v, %v", ok, err)
	}
	if len(got.Bullets) != 1 || got.Bullets[0] != "new" {
		t.Errorf("GetSummary() = %+v, want overwritten entry", got)
	}

	keys, err := s.ListSummaryKeys()
	if err != nil {
		t.Fatalf("ListSummaryKeys() error = %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("got %d keys after overwrite, want 1", len(keys))
	}
}

func TestClearSummaries(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	for _, key := range []string{"a", "b", "c"} {
		if err := s.PutSummary(key, models.SummaryResult{Bullets: []string{"x"}}); err != nil {
			t.Fatalf("PutSummary() error = %v", err)
		}
	}
	if err := s.ClearSummaries(); err != nil {
		t.Fatalf("ClearSummaries() error = %v", err)
	}

	keys, err := s.ListSummaryKeys()
	if err != nil {
		t.Fatalf("ListSummaryKeys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("got %d keys after clear, want 0", len(keys))
	}
}

func TestSettings(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	if v, err := s.GetSetting("aiProvider"); err != nil || v != "" {
		t.Fatalf("GetSetting() on empty store = %q, %v", v, err)
	}

	if err := s.PutSetting("aiProvider", "anthropic"); err != nil {
		t.Fatalf("PutSetting() error = %v", err)
	}
	if err := s.PutSetting("aiProvider", "ollama"); err != nil {
		t.Fatalf("PutSetting() error = %v", err)
	}

	v, err := s.GetSetting("aiProvider")
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if v != "ollama" {
		t.Errorf("GetSetting() = %q, want %q", v, "ollama")
	}
}
