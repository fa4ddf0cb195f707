// Package record shapes parsed language entries into the exportable form.
package record

import (
	"horse.fit/atlas/internal/langtext"
	"horse.fit/atlas/internal/report"
)

// significantPercent is the spoken share above which dropping an unresolved
// entry is worth a warning.
const significantPercent = 5.0

// Language is one exported language record for a country.
type Language struct {
	Label    string   `json:"label"`
	Code     *string  `json:"code"`
	Percent  *float64 `json:"percent"`
	Official bool     `json:"official"`
	Position int      `json:"position"`
}

// Format filters a country's parsed entries down to the relevant subset and
// shapes them for export. An entry survives when it carries a resolved code,
// sits among the first five entries, or carries a parsed percentage.
// Unresolved entries above the significance threshold are reported whether
// or not the position rule keeps them.
func Format(country string, entries []langtext.Entry, reporter report.Reporter) []Language {
	kept := make([]Language, 0, len(entries))
	for _, entry := range entries {
		if entry.Code == nil && entry.Percent != nil && *entry.Percent > significantPercent {
			reporter.DroppedEntry(country, entry.FullText, *entry.Percent)
		}
		if entry.Code == nil && entry.Position > 5 && entry.Percent == nil {
			continue
		}
		kept = append(kept, Language{
			Label:    entry.Name,
			Code:     entry.Code,
			Percent:  entry.Percent,
			Official: entry.Official,
			Position: entry.Position,
		})
	}
	return kept
}
