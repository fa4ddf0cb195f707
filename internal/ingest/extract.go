// Package ingest turns a saved almanac country page into the raw languages
// description the pipeline parses.
package ingest

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
)

const languagesLabel = "languages"

// FromHTML extracts the readable text of an almanac country page and pulls
// the spoken-languages field out of it. pageURL resolves relative links and
// may point at a file: URL for saved pages.
func FromHTML(r io.Reader, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	var renderedText strings.Builder
	if err := article.RenderText(&renderedText); err != nil {
		return "", fmt.Errorf("render readability text: %w", err)
	}

	descr, ok := LanguagesFromText(CleanText(renderedText.String()))
	if !ok {
		return "", fmt.Errorf("page has no languages field")
	}
	return descr, nil
}

// LanguagesFromText scans cleaned page text for the languages field. The
// field label is either its own line ("Languages" followed by the value
// line) or a prefix of the value line ("Languages: French, Creole").
func LanguagesFromText(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if !strings.HasPrefix(lower, languagesLabel) {
			continue
		}

		value := strings.TrimSpace(trimmed[len(languagesLabel):])
		value = strings.TrimSpace(strings.TrimPrefix(value, ":"))
		if value != "" {
			return value, true
		}
		for _, next := range lines[i+1:] {
			if candidate := strings.TrimSpace(next); candidate != "" {
				return candidate, true
			}
		}
		return "", false
	}
	return "", false
}

// CleanText normalizes line endings and collapses extra in-line whitespace.
func CleanText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := strings.Join(strings.Fields(strings.TrimSpace(line)), " ")
		if clean == "" {
			continue
		}
		cleaned = append(cleaned, clean)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
