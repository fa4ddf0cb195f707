// Package langtext parses almanac-style language list descriptions into
// structured entries.
package langtext

import "strings"

// Segment splits a raw language list description on commas, keeping
// parenthesized groups intact so commas inside them never split an entry.
// An unterminated parenthesis is recovered by treating the remainder of the
// string as the final entry.
func Segment(descr string) []string {
	var entries []string

	cursor := 0
	entryStart := 0
	insideParens := false
	for cursor < len(descr) {
		if insideParens {
			closePos := indexFrom(descr, ")", cursor)
			insideParens = false
			if closePos == -1 {
				cursor = len(descr)
				entries = append(entries, strings.TrimSpace(descr[entryStart:]))
				continue
			}
			cursor = closePos + 1
			if cursor >= len(descr) {
				entries = append(entries, strings.TrimSpace(descr[entryStart:]))
			}
			continue
		}

		openPos := indexFrom(descr, "(", cursor)
		commaPos := indexFrom(descr, ",", cursor)
		switch {
		case openPos == -1 && commaPos == -1:
			cursor = len(descr)
			entries = append(entries, strings.TrimSpace(descr[entryStart:]))
		case commaPos != -1 && (openPos == -1 || commaPos < openPos):
			entries = append(entries, strings.TrimSpace(descr[entryStart:commaPos]))
			cursor = commaPos + 1
			entryStart = cursor
		default:
			cursor = openPos + 1
			insideParens = true
		}
	}

	return entries
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	pos := strings.Index(s[from:], substr)
	if pos == -1 {
		return -1
	}
	return from + pos
}
