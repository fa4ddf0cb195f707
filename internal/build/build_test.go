package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"horse.fit/atlas/internal/report"
)

func testCountryCodes() map[string]string {
	return map[string]string{
		"HT": "Haiti",
		"BO": "Bolivia",
		"KP": "North Korea",
		"MM": "Myanmar (Burma)",
	}
}

func testLanguageCodes() map[string]string {
	return map[string]string{
		"fr": "French",
		"es": "Spanish",
		"qu": "Quechua",
		"ay": "Aymara",
		"my": "Burmese",
	}
}

func TestBuildResolvesCountriesAndLanguages(t *testing.T) {
	t.Parallel()

	descriptions := map[string]string{
		"Haiti":   "French (official) 20%, Creole (official)",
		"Bolivia": "Spanish (official) 60.7%, Quechua (official) 21.2%, Aymara (official) 14.6%",
	}

	output := Build(testCountryCodes(), testLanguageCodes(), descriptions, report.Nop{})

	haiti, ok := output["HT"]
	if !ok {
		t.Fatalf("expected Haiti in output, got %v", output)
	}
	if len(haiti) != 2 {
		t.Fatalf("expected 2 Haitian entries, got %d", len(haiti))
	}
	if haiti[0].Code == nil || *haiti[0].Code != "fr" {
		t.Fatalf("expected French to resolve to fr, got %+v", haiti[0])
	}
	if haiti[1].Code != nil {
		t.Fatalf("expected Creole to stay unresolved, got %q", *haiti[1].Code)
	}
	if !haiti[1].Official {
		t.Fatalf("expected Creole to be official")
	}

	bolivia := output["BO"]
	if len(bolivia) != 3 {
		t.Fatalf("expected 3 Bolivian entries, got %d", len(bolivia))
	}
	if bolivia[1].Percent == nil || *bolivia[1].Percent != 21.2 {
		t.Fatalf("unexpected Quechua percent: %v", bolivia[1].Percent)
	}
}

func TestBuildSkipsUnresolvedCountry(t *testing.T) {
	t.Parallel()

	descriptions := map[string]string{
		"Atlantis": "French (official)",
	}

	output := Build(testCountryCodes(), testLanguageCodes(), descriptions, report.Nop{})
	if len(output) != 0 {
		t.Fatalf("expected unresolved country to be excluded, got %v", output)
	}
}

func TestBuildAppliesCountryAliases(t *testing.T) {
	t.Parallel()

	descriptions := map[string]string{
		"Burma":        "Burmese (official)",
		"Korea, North": "Korean (official)",
	}

	output := Build(testCountryCodes(), testLanguageCodes(), descriptions, report.Nop{})
	if _, ok := output["MM"]; !ok {
		t.Fatalf("expected Burma to resolve via alias to MM, got %v", output)
	}
	if _, ok := output["KP"]; !ok {
		t.Fatalf("expected comma inversion to resolve KP, got %v", output)
	}
}

func TestBuildKeepsFirstFiveUnresolvedEntries(t *testing.T) {
	t.Parallel()

	descriptions := map[string]string{
		"Haiti": "aaa, bbb, ccc, ddd, eee, fff",
	}

	output := Build(testCountryCodes(), map[string]string{}, descriptions, report.Nop{})
	haiti := output["HT"]
	if len(haiti) != 5 {
		t.Fatalf("expected first five unresolved entries kept, got %d", len(haiti))
	}
}

func TestBuildExcludesCountriesWithEmptyRecordList(t *testing.T) {
	t.Parallel()

	descriptions := map[string]string{
		"Haiti": "",
	}

	output := Build(testCountryCodes(), testLanguageCodes(), descriptions, report.Nop{})
	if _, ok := output["HT"]; ok {
		t.Fatalf("expected country with no entries to be absent, got %v", output)
	}
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "country_code.json"), testCountryCodes())
	writeJSON(t, filepath.Join(dir, "language_code.json"), testLanguageCodes())
	writeJSON(t, filepath.Join(dir, "countries_data.json"), map[string]map[string]string{
		"Haiti":    {"People and Society: Languages": "French (official) 20%, Creole (official)"},
		"Atlantis": {"People and Society: Languages": "Atlantean"},
	})

	outputPath := filepath.Join(dir, "out", "languages.json")
	output, err := Run(Options{
		CountryCodesPath:  filepath.Join(dir, "country_code.json"),
		LanguageCodesPath: filepath.Join(dir, "language_code.json"),
		DatasetPath:       filepath.Join(dir, "countries_data.json"),
		OutputPath:        outputPath,
	}, report.Nop{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, ok := output["HT"]; !ok {
		t.Fatalf("expected HT in output, got %v", output)
	}
	if _, ok := output["XX"]; ok {
		t.Fatalf("unexpected country in output: %v", output)
	}

	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	decoded := map[string][]map[string]any{}
	if err := json.Unmarshal(written, &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded["HT"]) != 2 {
		t.Fatalf("expected 2 entries for HT on disk, got %d", len(decoded["HT"]))
	}
}

func writeJSON(t *testing.T, path string, value any) {
	t.Helper()
	encoded, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}
