// Package textstat computes lightweight content metrics for reporting.
package textstat

import (
	"math"
	"strings"
)

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimatedTokens estimates LLM tokens from a word count, at roughly 2.5
// words per token for web prose.
func EstimatedTokens(wordCount int) int {
	return int(math.Round(float64(wordCount) / 2.5))
}
