// Package datasetschema validates the almanac input files before the build
// pipeline consumes them.
package datasetschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed code_table.schema.json
var codeTableSchemaJSON string

//go:embed dataset.schema.json
var datasetSchemaJSON string

// LanguagesKey is the dataset field holding a country's spoken languages
// description.
const LanguagesKey = "People and Society: Languages"

var (
	compileOnce        sync.Once
	codeTableSchema    *jsonschema.Schema
	datasetSchema      *jsonschema.Schema
	compiledSchemasErr error
)

// ValidateCodeTable checks a code -> display name reference file and
// returns the decoded mapping.
func ValidateCodeTable(payload []byte) (map[string]string, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode code table JSON: %w", err)
	}

	if err := loadSchemas(); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := codeTableSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	table := map[string]string{}
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, fmt.Errorf("unmarshal code table: %w", err)
	}
	return table, nil
}

// ValidateDataset checks the country dataset file and returns the languages
// description per country display name. Countries without a languages field
// are omitted.
func ValidateDataset(payload []byte) (map[string]string, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode dataset JSON: %w", err)
	}

	if err := loadSchemas(); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := datasetSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	raw := map[string]map[string]any{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}

	descriptions := make(map[string]string, len(raw))
	for countryName, fields := range raw {
		descr, ok := fields[LanguagesKey].(string)
		if !ok {
			continue
		}
		descriptions[countryName] = descr
	}
	return descriptions, nil
}

func loadSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		for name, source := range map[string]string{
			"code_table.schema.json": codeTableSchemaJSON,
			"dataset.schema.json":    datasetSchemaJSON,
		} {
			if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
				compiledSchemasErr = fmt.Errorf("add schema resource %s: %w", name, err)
				return
			}
		}

		var err error
		if codeTableSchema, err = compiler.Compile("code_table.schema.json"); err != nil {
			compiledSchemasErr = fmt.Errorf("compile code table schema: %w", err)
			return
		}
		if datasetSchema, err = compiler.Compile("dataset.schema.json"); err != nil {
			compiledSchemasErr = fmt.Errorf("compile dataset schema: %w", err)
			return
		}
	})
	return compiledSchemasErr
}

func decodeStrictJSON(payload []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := ensureEOF(decoder); err != nil {
		return nil, err
	}
	return value, nil
}

func ensureEOF(decoder *json.Decoder) error {
	if _, err := decoder.Token(); err != io.EOF {
		return fmt.Errorf("unexpected trailing JSON content")
	}
	return nil
}
