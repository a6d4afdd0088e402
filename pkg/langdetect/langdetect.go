// Package langdetect identifies the language of extracted content so
// providers can be asked to answer in the same language.
package langdetect

import (
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

// minSampleLen is the least text worth classifying; below it the detector
// mostly guesses.
const minSampleLen = 40

// maxSampleLen caps how much text feeds the detector. Language is stable
// across a document; classifying all 30k chars buys nothing.
const maxSampleLen = 2000

var (
	buildOnce sync.Once
	detector  lingua.LanguageDetector
)

var languages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
	lingua.Arabic,
}

// Detect returns the human-readable language name of text and a confidence
// in [0,1]. An empty name means no confident classification.
func Detect(text string) (string, float64) {
	sample := strings.TrimSpace(text)
	if len(sample) < minSampleLen {
		return "", 0
	}
	if len(sample) > maxSampleLen {
		sample = sample[:maxSampleLen]
	}

	buildOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(sample)
	if !ok {
		return "", 0
	}
	confidence := detector.ComputeLanguageConfidence(sample, lang)
	return lang.String(), confidence
}
