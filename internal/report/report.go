// Package report abstracts diagnostic emission so the parsing core stays
// testable without capturing process output.
package report

import "github.com/rs/zerolog"

// Reporter receives advisory warnings from the pipeline. Warnings never
// abort processing; every reported condition has a defined recovery.
type Reporter interface {
	// UnresolvedName fires when a country or language name survives no
	// resolution strategy. raw is the original input, normalized the form
	// that was looked up.
	UnresolvedName(kind, raw, normalized string)
	// DroppedEntry fires for an entry with no resolved code but a spoken
	// share above the significance threshold.
	DroppedEntry(country, entryText string, percent float64)
}

// Suggester proposes a probable code for a name that failed resolution.
// Suggestions are advisory log fields only and never feed back into lookup.
type Suggester interface {
	SuggestCode(name string) string
}

// LogReporter writes warnings through zerolog.
type LogReporter struct {
	logger  zerolog.Logger
	suggest Suggester
}

// NewLogReporter builds the production reporter. suggest may be nil.
func NewLogReporter(logger zerolog.Logger, suggest Suggester) *LogReporter {
	return &LogReporter{logger: logger, suggest: suggest}
}

func (r *LogReporter) UnresolvedName(kind, raw, normalized string) {
	event := r.logger.Warn().
		Str("kind", kind).
		Str("name", raw).
		Str("normalized", normalized)
	if r.suggest != nil && kind == "language" {
		if code := r.suggest.SuggestCode(raw); code != "" {
			event = event.Str("suggested_code", code)
		}
	}
	event.Msg("no code found")
}

func (r *LogReporter) DroppedEntry(country, entryText string, percent float64) {
	r.logger.Warn().
		Str("country", country).
		Str("entry", entryText).
		Float64("percent", percent).
		Msg("ignoring language entry without code")
}

// Nop discards all warnings.
type Nop struct{}

func (Nop) UnresolvedName(kind, raw, normalized string) {}

func (Nop) DroppedEntry(country, entryText string, percent float64) {}
