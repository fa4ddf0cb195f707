package langtext

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is one language's slice of a country description, with the fields
// that could be recovered from its free text.
type Entry struct {
	FullText string
	Name     string
	Code     *string
	Percent  *float64
	Official bool
	Position int
}

var (
	// Up to three integer digits with an optional fractional part, or a
	// fraction-only form. Both "." and "," act as the decimal separator.
	percentPattern = regexp.MustCompile(`((?:[0-9]{1,3}(?:[.,][0-9]{0,10})?)|(?:[.,][0-9]{1,10})) ?%`)
	namePattern    = regexp.MustCompile(`^[a-zA-Z -]+`)
)

// ParseEntry extracts the percentage, official marker and bare name from a
// single entry substring. Every input yields a best-effort result; malformed
// text falls back to the raw entry as the name.
func ParseEntry(descr string) Entry {
	entry := Entry{FullText: descr}

	if m := percentPattern.FindStringSubmatch(descr); m != nil {
		raw := strings.ReplaceAll(m[1], ",", ".")
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			entry.Percent = &value
		}
	}

	entry.Official = strings.Contains(strings.ToLower(descr), "official")

	if m := namePattern.FindString(descr); m != "" {
		entry.Name = strings.ToLower(strings.TrimSpace(m))
	} else {
		entry.Name = strings.ToLower(descr)
	}

	return entry
}

// Parse segments a full description and parses each entry. Position is
// 1-based in order of appearance.
func Parse(descr string) []Entry {
	segments := Segment(descr)
	entries := make([]Entry, 0, len(segments))
	for i, segment := range segments {
		entry := ParseEntry(segment)
		entry.Position = i + 1
		entries = append(entries, entry)
	}
	return entries
}
