package resolve

import (
	"regexp"
	"strings"

	"horse.fit/atlas/internal/codes"
	"horse.fit/atlas/internal/report"
)

// strategy attempts one fallback resolution of an already-normalized name.
// ok reports success; final stops the strategy chain even on failure, which
// suppresses the resolver's own diagnostic.
type strategy func(r *Resolver, name string) (code string, ok bool, final bool)

var parentheticalPattern = regexp.MustCompile(`^(.*) \((.*)\)$`)

// Resolver maps free-text names to codes from one reference table, applying
// an ordered list of fallback strategies and short-circuiting on the first
// success. Resolution failure is a normal outcome, surfaced only through
// the reporter.
type Resolver struct {
	rules      Rules
	table      codes.Table
	reporter   report.Reporter
	strategies []strategy
}

// New builds a resolver for one name domain. reporter may not be nil; use
// report.Nop to discard diagnostics.
func New(rules Rules, table codes.Table, reporter report.Reporter) *Resolver {
	strategies := []strategy{directLookup, orAlternation}
	if rules.CommaInversion {
		strategies = append(strategies, commaInversion)
	}
	if rules.Parenthetical {
		strategies = append(strategies, parentheticalAlternate)
	}

	return &Resolver{
		rules:      rules,
		table:      table,
		reporter:   reporter,
		strategies: strategies,
	}
}

// Resolve normalizes raw and runs the strategy chain. The boolean result
// reports whether a code was found.
func (r *Resolver) Resolve(raw string) (string, bool) {
	name := r.rules.Normalize(raw)

	if code, ok := r.rules.DirectCodes[name]; ok {
		return code, true
	}

	for _, attempt := range r.strategies {
		code, ok, final := attempt(r, name)
		if ok {
			return code, true
		}
		if final {
			return "", false
		}
	}

	r.reporter.UnresolvedName(r.rules.Kind, raw, name)
	return "", false
}

func directLookup(r *Resolver, name string) (string, bool, bool) {
	code, ok := r.table.Lookup(name)
	return code, ok, false
}

// orAlternation splits "dutch or flemish" style names and fully re-resolves
// each alternative, preferring the first that succeeds. A name containing
// " or " never falls through to the later strategies, even when every
// alternative fails; the failed alternatives emit their own diagnostics.
func orAlternation(r *Resolver, name string) (string, bool, bool) {
	if !strings.Contains(name, " or ") {
		return "", false, false
	}

	for _, alternative := range strings.Split(name, " or ") {
		if code, ok := r.Resolve(strings.TrimSpace(alternative)); ok {
			return code, true, true
		}
	}
	return "", false, true
}

// commaInversion tries "Korea, North" as "North Korea", then as just the
// text before the first comma. Both are direct lookups without
// re-normalization.
func commaInversion(r *Resolver, name string) (string, bool, bool) {
	if !strings.Contains(name, ",") {
		return "", false, false
	}

	fragments := strings.Split(name, ",")
	inverted := make([]string, 0, len(fragments))
	for i := len(fragments) - 1; i >= 0; i-- {
		inverted = append(inverted, strings.TrimSpace(fragments[i]))
	}
	if code, ok := r.table.Lookup(strings.Join(inverted, " ")); ok {
		return code, true, false
	}

	short, _, _ := strings.Cut(name, ",")
	if code, ok := r.table.Lookup(short); ok {
		return code, true, false
	}
	return "", false, false
}

// parentheticalAlternate handles "Falkland Islands (Islas Malvinas)" style
// names: the parenthetical alone first, then the prefix alone.
func parentheticalAlternate(r *Resolver, name string) (string, bool, bool) {
	m := parentheticalPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false, false
	}

	if code, ok := r.table.Lookup(strings.TrimSpace(m[2])); ok {
		return code, true, false
	}
	if code, ok := r.table.Lookup(strings.TrimSpace(m[1])); ok {
		return code, true, false
	}
	return "", false, false
}
