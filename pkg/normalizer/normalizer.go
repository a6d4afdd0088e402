// Package normalizer coerces raw AI provider output into a clean ordered
// bullet list. Providers are asked for {"bullets": [...]} JSON but are not
// trusted to produce it; a chain of fallback stages degrades from strict
// parsing down to best-effort text recovery before giving up.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailure means every recovery stage produced zero bullets. This is
// the only normalizer failure mode, distinct from provider/network errors.
var ErrParseFailure = errors.New("could not extract any bullets from response")

// Heuristic constants for telling JSON keys/labels apart from content.
// These are fixed behavior, not tunables.
const (
	minQuotedRunLen   = 20 // quoted runs shorter than this are never content
	maxKeyLikeLen     = 50 // colon-bearing strings up to this length look like keys
	minMarkerLineLen  = 10 // marker-line remainders must exceed this when trimmed
	minSentenceLen    = 20 // sentences must exceed this when trimmed
	maxSentenceCount  = 10
)

var (
	reQuotedRun     = regexp.MustCompile(fmt.Sprintf(`"([^"]{%d,})"`, minQuotedRunLen))
	reMarkerLine    = regexp.MustCompile(`^\s*(?:[-•*]|\d+[.)])\s+(.+)$`)
	reTrailingComma = regexp.MustCompile(`,\s*([\]}])`)
	reWhitespace    = regexp.MustCompile(`\s+`)
	reSentenceEnd   = regexp.MustCompile(`[.!?]+`)
)

// Normalize turns raw provider text into an ordered list of non-empty,
// trimmed bullets. Pure and deterministic; the first stage to produce at
// least one bullet wins and order is always source order.
func Normalize(raw string) ([]string, error) {
	if span, ok := braceSpan(raw); ok {
		if bullets := parseBullets(span); len(bullets) > 0 {
			return bullets, nil
		}
		if bullets := parseBullets(repair(span)); len(bullets) > 0 {
			return bullets, nil
		}
		if bullets := quotedRuns(span); len(bullets) > 0 {
			return bullets, nil
		}
	}
	if bullets := markerLines(raw); len(bullets) > 0 {
		return bullets, nil
	}
	if bullets := sentences(raw); len(bullets) > 0 {
		return bullets, nil
	}
	return nil, ErrParseFailure
}

// braceSpan locates the first greedy {...} span: first opening brace through
// the last closing brace.
func braceSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseBullets attempts a strict parse of span as {"bullets": [...]}.
// Non-string array elements become empty strings and are then dropped with
// the other empties. Returns nil when the span does not parse.
func parseBullets(span string) []string {
	var payload struct {
		Bullets []any `json:"bullets"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil
	}
	var bullets []string
	for _, v := range payload.Bullets {
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		if s != "" {
			bullets = append(bullets, s)
		}
	}
	return bullets
}

// repair cleans up the most common JSON malformations seen in model output:
// embedded newlines inside strings, stray control characters, and trailing
// commas before a closing bracket or brace.
func repair(span string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, span)
	cleaned = reTrailingComma.ReplaceAllString(cleaned, "$1")
	return strings.TrimSpace(reWhitespace.ReplaceAllString(cleaned, " "))
}

// quotedRuns scavenges double-quoted runs of content-like length from an
// unparseable span. A run containing a colon that is still short enough to
// be a key/short label is skipped.
func quotedRuns(span string) []string {
	var bullets []string
	for _, m := range reQuotedRun.FindAllStringSubmatch(span, -1) {
		candidate := m[1]
		if strings.Contains(candidate, ":") && len(candidate) <= maxKeyLikeLen {
			continue
		}
		candidate = strings.TrimSpace(candidate)
		if candidate != "" {
			bullets = append(bullets, candidate)
		}
	}
	return bullets
}

// markerLines collects lines led by a bullet marker (-, •, *) or a numbered
// marker (N. / N)), keeping remainders with enough substance.
func markerLines(raw string) []string {
	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		m := reMarkerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[1])
		if len(rest) > minMarkerLineLen {
			bullets = append(bullets, rest)
		}
	}
	return bullets
}

// sentences is the last resort: split on sentence terminators and keep the
// first handful of substantive sentences.
func sentences(raw string) []string {
	var bullets []string
	for _, part := range reSentenceEnd.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if len(part) <= minSentenceLen {
			continue
		}
		bullets = append(bullets, part)
		if len(bullets) == maxSentenceCount {
			break
		}
	}
	return bullets
}
