package resolve

import (
	"testing"

	"horse.fit/atlas/internal/codes"
	"horse.fit/atlas/internal/report"
)

type recordingReporter struct {
	unresolved []string
}

func (r *recordingReporter) UnresolvedName(kind, raw, normalized string) {
	r.unresolved = append(r.unresolved, kind+":"+raw)
}

func (r *recordingReporter) DroppedEntry(country, entryText string, percent float64) {}

func languageTable() codes.Table {
	return codes.Invert(map[string]string{
		"NL": "Dutch",
		"FR": "French",
		"DE": "German",
	})
}

func countryTable() codes.Table {
	return codes.Invert(map[string]string{
		"KP": "North Korea",
		"FK": "Falkland Islands",
		"FM": "Micronesia",
		"MM": "Myanmar (Burma)",
		"US": "United States",
		"SJ": "Svalbard & Jan Mayen",
	}, codes.StripDiacritics())
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	rules := CountryRules()
	inputs := []string{"Saint Martin", "Trinidad and Tobago", "The Gambia", "Burma"}
	for _, input := range inputs {
		once := rules.Normalize(input)
		if twice := rules.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeDropsAndReplacesTokens(t *testing.T) {
	t.Parallel()

	rules := CountryRules()
	if got := rules.Normalize("The Gambia"); got != "gambia" {
		t.Fatalf("expected %q, got %q", "gambia", got)
	}
	if got := rules.Normalize("Trinidad and Tobago"); got != "trinidad & tobago" {
		t.Fatalf("expected %q, got %q", "trinidad & tobago", got)
	}
	if got := rules.Normalize("Saint Lucia"); got != "st. lucia" {
		t.Fatalf("expected %q, got %q", "st. lucia", got)
	}
}

func TestNormalizeLanguageIgnoresOnly(t *testing.T) {
	t.Parallel()

	rules := LanguageRules()
	if got := rules.Normalize("French only"); got != "french" {
		t.Fatalf("expected %q, got %q", "french", got)
	}
}

func TestResolveDirectLookup(t *testing.T) {
	t.Parallel()

	r := New(LanguageRules(), languageTable(), report.Nop{})
	code, ok := r.Resolve("French")
	if !ok || code != "FR" {
		t.Fatalf("expected FR, got %q (%t)", code, ok)
	}
}

func TestResolveOrAlternationPrefersFirst(t *testing.T) {
	t.Parallel()

	r := New(LanguageRules(), languageTable(), report.Nop{})
	code, ok := r.Resolve("Dutch or Flemish")
	if !ok || code != "NL" {
		t.Fatalf("expected NL for first alternative, got %q (%t)", code, ok)
	}

	code, ok = r.Resolve("Flemish or Dutch")
	if !ok || code != "NL" {
		t.Fatalf("expected NL for second alternative, got %q (%t)", code, ok)
	}
}

func TestResolveOrAlternationReportsEachFailedAlternative(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	r := New(LanguageRules(), languageTable(), reporter)
	if _, ok := r.Resolve("Klingon or Elvish"); ok {
		t.Fatalf("did not expect resolution")
	}
	if len(reporter.unresolved) != 2 {
		t.Fatalf("expected one diagnostic per alternative, got %v", reporter.unresolved)
	}
}

func TestResolveCommaInversion(t *testing.T) {
	t.Parallel()

	r := New(CountryRules(), countryTable(), report.Nop{})
	code, ok := r.Resolve("Korea, North")
	if !ok || code != "KP" {
		t.Fatalf("expected KP, got %q (%t)", code, ok)
	}
}

func TestResolveCommaShortName(t *testing.T) {
	t.Parallel()

	r := New(CountryRules(), countryTable(), report.Nop{})
	code, ok := r.Resolve("Micronesia, Federated States of")
	if !ok || code != "FM" {
		t.Fatalf("expected FM, got %q (%t)", code, ok)
	}
}

func TestResolveParentheticalAlternate(t *testing.T) {
	t.Parallel()

	r := New(CountryRules(), countryTable(), report.Nop{})
	code, ok := r.Resolve("Falkland Islands (Islas Malvinas)")
	if !ok || code != "FK" {
		t.Fatalf("expected FK, got %q (%t)", code, ok)
	}
}

func TestResolveAliasTable(t *testing.T) {
	t.Parallel()

	r := New(CountryRules(), countryTable(), report.Nop{})
	viaAlias, ok := r.Resolve("Burma")
	if !ok {
		t.Fatalf("expected alias to resolve")
	}
	direct, ok := countryTable().Lookup("myanmar (burma)")
	if !ok {
		t.Fatalf("reference table is missing the canonical name")
	}
	if viaAlias != direct {
		t.Fatalf("alias resolved %q, direct lookup %q", viaAlias, direct)
	}

	if code, ok := r.Resolve("Svalbard"); !ok || code != "SJ" {
		t.Fatalf("expected SJ via alias, got %q (%t)", code, ok)
	}
}

func TestResolveKosovoBypassesTable(t *testing.T) {
	t.Parallel()

	r := New(CountryRules(), countryTable(), report.Nop{})
	code, ok := r.Resolve("Kosovo")
	if !ok || code != "XK" {
		t.Fatalf("expected hardcoded XK, got %q (%t)", code, ok)
	}
}

func TestResolveOrPrecedesCommaFallback(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	table := codes.Invert(map[string]string{"XX": "North or Unknown Korea"}, codes.StripDiacritics())
	r := New(CountryRules(), table, reporter)

	// Comma inversion of the whole name would hit the table, but the " or "
	// split runs first and a failed alternation never falls through.
	if _, ok := r.Resolve("Korea, North or Unknown"); ok {
		t.Fatalf("expected the failed alternation to forfeit the comma fallback")
	}
	if len(reporter.unresolved) != 2 {
		t.Fatalf("expected diagnostics for both alternatives, got %v", reporter.unresolved)
	}
}

func TestResolveFailureEmitsDiagnostic(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	r := New(CountryRules(), countryTable(), reporter)
	if _, ok := r.Resolve("Atlantis"); ok {
		t.Fatalf("did not expect resolution")
	}
	if len(reporter.unresolved) != 1 || reporter.unresolved[0] != "country:Atlantis" {
		t.Fatalf("expected one country diagnostic, got %v", reporter.unresolved)
	}
}
