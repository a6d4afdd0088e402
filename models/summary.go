// Package models defines the shared data structures of the summarization
// pipeline.
package models

import "unicode/utf8"

// MaxContentLength bounds extracted content to keep provider request sizes
// sane. Longer content is tail-truncated, never rejected.
const MaxContentLength = 30000

// Truncate performs a silent tail cut at max bytes, backing off to a rune
// boundary so the cut never splits a multibyte character.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// SummaryResult is the outcome of one summarization: either an ordered list
// of bullets or an error message, never both.
type SummaryResult struct {
	Bullets []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the result carries an error instead of bullets.
func (r SummaryResult) Failed() bool {
	return r.Error != ""
}

// ErrorResult wraps an error into a SummaryResult.
func ErrorResult(err error) SummaryResult {
	return SummaryResult{Error: err.Error()}
}

// SummaryStats carries reporting metadata alongside a result. It is never
// cached; it describes the content that produced the summary.
type SummaryStats struct {
	WordCount       int    `json:"word_count" yaml:"word_count"`
	EstimatedTokens int    `json:"estimated_tokens" yaml:"estimated_tokens"`
	Language        string `json:"language,omitempty" yaml:"language,omitempty"`
	Truncated       bool   `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}
