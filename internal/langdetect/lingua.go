// Package langdetect proposes probable ISO 639-1 codes for language names
// that failed table resolution. Many almanac entries carry endonyms
// ("Deutsch", "français"); detecting the language the name itself is
// written in often identifies the language it denotes. The result is an
// advisory diagnostic field only and never feeds back into resolution.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Suggester implements report.Suggester on top of lingua.
type Suggester struct{}

func (Suggester) SuggestCode(name string) string {
	return DetectISO6391(name)
}

// DetectISO6391 returns a two-letter code guess for the given text, or an
// empty string when the sample is too short to trust.
func DetectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
