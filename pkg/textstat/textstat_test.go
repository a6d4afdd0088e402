package textstat

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"simple", "one two three", 3},
		{"extra whitespace", "  one \n two\tthree  ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.text); got != tt.want {
				t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimatedTokens(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{5, 2},
		{25, 10},
		{1000, 400},
	}
	for _, tt := range tests {
		if got := EstimatedTokens(tt.words); got != tt.want {
			t.Errorf("EstimatedTokens(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
