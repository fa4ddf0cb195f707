package datasetschema

import "testing"

func TestValidateCodeTable(t *testing.T) {
	t.Parallel()

	table, err := ValidateCodeTable([]byte(`{"FR": "French", "EN": "English"}`))
	if err != nil {
		t.Fatalf("ValidateCodeTable failed: %v", err)
	}
	if table["FR"] != "French" {
		t.Fatalf("unexpected table contents: %v", table)
	}
}

func TestValidateCodeTableRejectsNonObject(t *testing.T) {
	t.Parallel()

	if _, err := ValidateCodeTable([]byte(`["FR"]`)); err == nil {
		t.Fatalf("expected array payload to fail validation")
	}
}

func TestValidateCodeTableRejectsNonStringValues(t *testing.T) {
	t.Parallel()

	if _, err := ValidateCodeTable([]byte(`{"FR": 12}`)); err == nil {
		t.Fatalf("expected numeric display name to fail validation")
	}
}

func TestValidateDataset(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"Haiti": {"People and Society: Languages": "French (official) 20%, Creole (official)", "Geography: Area": "27,750 sq km"},
		"Atlantis": {"Geography: Area": "unknown"}
	}`)

	descriptions, err := ValidateDataset(payload)
	if err != nil {
		t.Fatalf("ValidateDataset failed: %v", err)
	}
	if len(descriptions) != 1 {
		t.Fatalf("expected 1 country with a languages field, got %d", len(descriptions))
	}
	if descriptions["Haiti"] != "French (official) 20%, Creole (official)" {
		t.Fatalf("unexpected description: %q", descriptions["Haiti"])
	}
}

func TestValidateDatasetRejectsTrailingContent(t *testing.T) {
	t.Parallel()

	if _, err := ValidateDataset([]byte(`{} {}`)); err == nil {
		t.Fatalf("expected trailing JSON content to fail")
	}
}
