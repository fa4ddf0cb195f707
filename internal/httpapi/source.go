package httpapi

import (
	"context"
	"sort"

	"horse.fit/atlas/internal/record"
)

// MemorySource serves records from an in-memory build output, for running
// the API straight off the build file without a database.
type MemorySource struct {
	records map[string][]record.Language
	codes   []string
}

func NewMemorySource(records map[string][]record.Language) *MemorySource {
	codes := make([]string, 0, len(records))
	for code := range records {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &MemorySource{records: records, codes: codes}
}

func (m *MemorySource) Countries(ctx context.Context) ([]string, error) {
	return append([]string(nil), m.codes...), nil
}

func (m *MemorySource) Languages(ctx context.Context, countryCode string) ([]record.Language, bool, error) {
	languages, ok := m.records[countryCode]
	if !ok {
		return nil, false, nil
	}
	return languages, true, nil
}
