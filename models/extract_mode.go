package models

import "fmt"

// ExtractMode selects the generic-page extraction strategy.
type ExtractMode int

const (
	// ExtractModeHeuristic strips tags with regex heuristics. Default.
	ExtractModeHeuristic ExtractMode = iota
	ExtractModeReadability // Article distillation via go-readability
)

// ParseExtractMode resolves a CLI/config mode string. Empty means heuristic.
func ParseExtractMode(s string) (ExtractMode, error) {
	switch s {
	case "", "heuristic":
		return ExtractModeHeuristic, nil
	case "readability":
		return ExtractModeReadability, nil
	default:
		return ExtractModeHeuristic, fmt.Errorf("unknown extract mode: %q", s)
	}
}
