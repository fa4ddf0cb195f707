package codes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInvertLowercasesDisplayNames(t *testing.T) {
	t.Parallel()

	table := Invert(map[string]string{"FR": "French", "EN": "English"})
	if code, ok := table.Lookup("french"); !ok || code != "FR" {
		t.Fatalf("expected french -> FR, got %q (%t)", code, ok)
	}
	if _, ok := table.Lookup("French"); ok {
		t.Fatalf("lookup keys must be lowercased by the caller")
	}
}

func TestInvertStripDiacritics(t *testing.T) {
	t.Parallel()

	table := Invert(map[string]string{"CW": "Curaçao", "CI": "Côte d’Ivoire"}, StripDiacritics())
	if code, ok := table.Lookup("curacao"); !ok || code != "CW" {
		t.Fatalf("expected curacao -> CW, got %q (%t)", code, ok)
	}
	if code, ok := table.Lookup("cote divoire"); !ok || code != "CI" {
		t.Fatalf("expected folded ivorian name -> CI, got %q (%t)", code, ok)
	}
}

func TestToASCII(t *testing.T) {
	t.Parallel()

	if got := ToASCII("são tomé"); got != "sao tome" {
		t.Fatalf("unexpected fold: %q", got)
	}
	if got := ToASCII("plain"); got != "plain" {
		t.Fatalf("ascii input must pass through, got %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "codes.json")
	if err := os.WriteFile(path, []byte(`{"ES": "Spanish"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if code, ok := table.Lookup("spanish"); !ok || code != "ES" {
		t.Fatalf("expected spanish -> ES, got %q (%t)", code, ok)
	}
}

func TestLoadFileRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "codes.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected decode error for non-object payload")
	}
}
