// Package build runs the full dataset-to-records pipeline: reference table
// inversion, country resolution, description parsing, language resolution
// and record formatting.
package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"horse.fit/atlas/internal/codes"
	"horse.fit/atlas/internal/langtext"
	"horse.fit/atlas/internal/record"
	"horse.fit/atlas/internal/report"
	"horse.fit/atlas/internal/resolve"
	datasetschema "horse.fit/atlas/schema"
)

// Options name the input and output files of one build run.
type Options struct {
	CountryCodesPath  string
	LanguageCodesPath string
	DatasetPath       string
	OutputPath        string
}

// Output maps country code to its exported language records.
type Output map[string][]record.Language

// Build computes language records from in-memory inputs. Countries whose
// name resolves to no code, and countries whose filtered record list is
// empty, are absent from the result.
func Build(countryCodes, languageCodes map[string]string, descriptions map[string]string, reporter report.Reporter) Output {
	countryResolver := resolve.New(
		resolve.CountryRules(),
		codes.Invert(countryCodes, codes.StripDiacritics()),
		reporter,
	)
	languageResolver := resolve.New(
		resolve.LanguageRules(),
		codes.Invert(languageCodes),
		reporter,
	)

	output := Output{}
	for countryName, descr := range descriptions {
		countryCode, ok := countryResolver.Resolve(countryName)
		if !ok {
			continue
		}

		entries := langtext.Parse(descr)
		for i := range entries {
			if code, ok := languageResolver.Resolve(entries[i].Name); ok {
				entries[i].Code = &code
			}
		}

		languages := record.Format(countryCode, entries, reporter)
		if len(languages) == 0 {
			continue
		}
		output[countryCode] = languages
	}
	return output
}

// Run loads and validates the input files, builds the records and writes
// them as indented JSON with country codes in sorted order.
func Run(opts Options, reporter report.Reporter) (Output, error) {
	countryCodes, err := loadCodeTable(opts.CountryCodesPath)
	if err != nil {
		return nil, err
	}
	languageCodes, err := loadCodeTable(opts.LanguageCodesPath)
	if err != nil {
		return nil, err
	}

	datasetPayload, err := os.ReadFile(filepath.Clean(opts.DatasetPath))
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	descriptions, err := datasetschema.ValidateDataset(datasetPayload)
	if err != nil {
		return nil, fmt.Errorf("validate dataset %s: %w", filepath.Base(opts.DatasetPath), err)
	}

	output := Build(countryCodes, languageCodes, descriptions, reporter)

	if opts.OutputPath != "" {
		if err := WriteOutput(opts.OutputPath, output); err != nil {
			return nil, err
		}
	}
	return output, nil
}

// WriteOutput encodes the build result to path. encoding/json emits map
// keys sorted, which yields the stable by-code ordering the output format
// requires.
func WriteOutput(path string, output Output) error {
	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	encoded = append(encoded, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func loadCodeTable(path string) (map[string]string, error) {
	payload, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read code table: %w", err)
	}
	table, err := datasetschema.ValidateCodeTable(payload)
	if err != nil {
		return nil, fmt.Errorf("validate code table %s: %w", filepath.Base(path), err)
	}
	return table, nil
}
