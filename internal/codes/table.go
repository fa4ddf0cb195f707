// Package codes holds the canonical code reference tables and the inverted
// lookup form the resolver consumes.
package codes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table maps a lowercased display name to its canonical code. It is built
// once by inverting a code -> display name mapping and never mutated after.
// Display names colliding after normalization silently last-win.
type Table map[string]string

// Option adjusts how a table inversion normalizes display names.
type Option func(*inversion)

type inversion struct {
	stripDiacritics bool
}

// StripDiacritics folds display names to plain ASCII before inversion.
// The country reference table carries accented names ("Curaçao") while the
// almanac text is plain ASCII, so the country instance needs this.
func StripDiacritics() Option {
	return func(inv *inversion) {
		inv.stripDiacritics = true
	}
}

// Invert builds a lookup table from a code -> display name mapping.
func Invert(byCode map[string]string, opts ...Option) Table {
	var inv inversion
	for _, opt := range opts {
		opt(&inv)
	}

	table := make(Table, len(byCode))
	for code, displayName := range byCode {
		key := strings.ToLower(displayName)
		if inv.stripDiacritics {
			key = ToASCII(key)
		}
		table[key] = code
	}
	return table
}

// Lookup returns the code for an already-normalized name.
func (t Table) Lookup(name string) (string, bool) {
	code, ok := t[name]
	return code, ok
}

// LoadFile reads a {"CODE": "Display Name"} JSON file and inverts it.
func LoadFile(path string, opts ...Option) (Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read code table: %w", err)
	}

	byCode := map[string]string{}
	if err := json.Unmarshal(data, &byCode); err != nil {
		return nil, fmt.Errorf("decode code table %s: %w", filepath.Base(path), err)
	}

	return Invert(byCode, opts...), nil
}

var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// ToASCII decomposes accented characters, drops the combining marks and then
// any rune still outside the ASCII range.
func ToASCII(value string) string {
	folded, _, err := transform.String(asciiFold, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
