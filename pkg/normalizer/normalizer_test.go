package normalizer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeStrictJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "clean object",
			raw:  `{"bullets": ["First point", "Second point"]}`,
			want: []string{"First point", "Second point"},
		},
		{
			name: "object embedded in prose",
			raw:  "Sure! Here is the summary:\n{\"bullets\": [\"Only point\"]}\nHope this helps.",
			want: []string{"Only point"},
		},
		{
			name: "markdown fenced object",
			raw:  "```json\n{\"bullets\": [\"Fenced point one\", \"Fenced point two\"]}\n```",
			want: []string{"Fenced point one", "Fenced point two"},
		},
		{
			name: "empty and non-string entries dropped, whitespace trimmed",
			raw:  `{"bullets": ["a", "", "  b  ", 5]}`,
			want: []string{"a", "b"},
		},
		{
			name: "order preserved",
			raw:  `{"bullets": ["z point", "a point", "m point"]}`,
			want: []string{"z point", "a point", "m point"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeRepairedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "trailing comma in array",
			raw:  `{"bullets": ["First point", "Second point",]}`,
			want: []string{"First point", "Second point"},
		},
		{
			name: "trailing comma before closing brace",
			raw:  `{"bullets": ["Only point"],}`,
			want: []string{"Only point"},
		},
		{
			name: "raw newline inside a bullet string",
			raw:  "{\"bullets\": [\"First half\nsecond half\"]}",
			want: []string{"First half second half"},
		},
		{
			name: "control characters stripped",
			raw:  "{\"bullets\": [\"Point\x01with\x02noise\"]}",
			want: []string{"Point with noise"},
		},
		{
			name: "whitespace runs collapsed",
			raw:  "{\"bullets\": [\"Spaced    out\tpoint\",]}",
			want: []string{"Spaced out point"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeQuotedRunScan(t *testing.T) {
	// Deliberately unparseable even after repair: the stray token forces
	// the scan stage. Colon-bearing runs up to 50 chars look like keys or
	// short labels and must be skipped.
	raw := `{"bullets": oops ["The quick brown fox jumps over the lazy dog", "summary_style: compact extract", "Another recovered candidate bullet here"`
	// Close the span so a brace pair exists.
	raw += "}"

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{
		"The quick brown fox jumps over the lazy dog",
		"Another recovered candidate bullet here",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestQuotedRunLengthThreshold(t *testing.T) {
	atThreshold := strings.Repeat("a", minQuotedRunLen)
	below := strings.Repeat("b", minQuotedRunLen-1)

	if got := quotedRuns(`"` + atThreshold + `"`); len(got) != 1 || got[0] != atThreshold {
		t.Errorf("quotedRuns() at threshold = %v, want [%q]", got, atThreshold)
	}
	if got := quotedRuns(`"` + below + `"`); len(got) != 0 {
		t.Errorf("quotedRuns() below threshold = %v, want none", got)
	}
}

func TestNormalizeQuotedRunKeepsLongColonStrings(t *testing.T) {
	// A colon-bearing run longer than 50 chars is content, not a key.
	long := "Key finding: the experiment reproduced across all seventeen trials"
	raw := `{invalid "` + long + `"}`

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got) != 1 || got[0] != long {
		t.Errorf("Normalize() = %v, want [%q]", got, long)
	}
}

func TestNormalizeMarkerLines(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered list with surrounding prose",
			raw:  "Intro.\n1. First point about X.\n2. Second point about Y.\nOutro.",
			want: []string{"First point about X.", "Second point about Y."},
		},
		{
			name: "dash and star and dot markers",
			raw:  "- Dash marker line content\n* Star marker line content\n• Dot marker line content",
			want: []string{"Dash marker line content", "Star marker line content", "Dot marker line content"},
		},
		{
			name: "paren numbered markers",
			raw:  "1) Paren numbered content line\n2) Next numbered content line",
			want: []string{"Paren numbered content line", "Next numbered content line"},
		},
		{
			name: "short remainders dropped",
			raw:  "- too short\n- this remainder is long enough to keep",
			want: []string{"this remainder is long enough to keep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeSentenceFallback(t *testing.T) {
	raw := "The first sentence carries real substance. Tiny one. " +
		"The second sentence also carries real substance! " +
		"Does the third sentence carry substance as well?"

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{
		"The first sentence carries real substance",
		"The second sentence also carries real substance",
		"Does the third sentence carry substance as well",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeSentenceFallbackCap(t *testing.T) {
	raw := ""
	for i := 0; i < 15; i++ {
		raw += "This is a sufficiently long filler sentence. "
	}

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got) != maxSentenceCount {
		t.Errorf("got %d sentences, want %d", len(got), maxSentenceCount)
	}
}

func TestNormalizeParseFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty input", raw: ""},
		{name: "whitespace only", raw: "   \n\t  "},
		{name: "short fragments only", raw: "ok. fine. sure."},
		{name: "empty bullets object", raw: `{"bullets": []}`},
		{name: "bullets of empty strings", raw: `{"bullets":["",""]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if !errors.Is(err, ErrParseFailure) {
				t.Errorf("Normalize() error = %v, want ErrParseFailure", err)
			}
		})
	}
}

func TestNormalizeJSONWinsOverMarkers(t *testing.T) {
	// When a parseable object exists, marker lines elsewhere are ignored.
	raw := "- stray marker line with content\n{\"bullets\": [\"From the object\"]}"
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got) != 1 || got[0] != "From the object" {
		t.Errorf("Normalize() = %v, want [From the object]", got)
	}
}
