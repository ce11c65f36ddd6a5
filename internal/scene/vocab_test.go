package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadVocabMissingFilesUseDefaults(t *testing.T) {
	v := LoadVocab(filepath.Join(t.TempDir(), "absent.json"), "")

	if !v.Allowed(DomainTimeOfDay, "noon") {
		t.Fatal("expected default enum membership")
	}
	if resolved, ok := v.Resolve(DomainTimeOfDay, "midday"); !ok || resolved != "noon" {
		t.Fatalf("expected default synonym midday->noon, got %q (%v)", resolved, ok)
	}
}

func TestLoadVocabMalformedFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	enumPath := filepath.Join(dir, "enums.json")
	if err := os.WriteFile(enumPath, []byte("[broken"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	v := LoadVocab(enumPath, "")
	if !v.Allowed(DomainWeatherType, "storm") {
		t.Fatal("expected defaults after malformed enum file")
	}
}

func TestLoadVocabReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	enumPath := filepath.Join(dir, "enums.json")
	synPath := filepath.Join(dir, "synonyms.json")
	if err := os.WriteFile(enumPath, []byte(`{"weather_type": ["ash_rain", "clear"]}`), 0o600); err != nil {
		t.Fatalf("write enums: %v", err)
	}
	if err := os.WriteFile(synPath, []byte(`{"weather_type": {"cinders": "ash_rain"}}`), 0o600); err != nil {
		t.Fatalf("write synonyms: %v", err)
	}

	v := LoadVocab(enumPath, synPath)
	if !v.Allowed("weather_type", "ash_rain") {
		t.Fatal("expected override enum member")
	}
	if v.Allowed("weather_type", "storm") {
		t.Fatal("override should replace the default enum")
	}
	if resolved, ok := v.Resolve("weather_type", "cinders"); !ok || resolved != "ash_rain" {
		t.Fatalf("expected override synonym, got %q (%v)", resolved, ok)
	}
}

func TestVocabDomainsWithoutEnumAcceptAnything(t *testing.T) {
	v := DefaultVocab()
	if v.HasEnum("region") {
		t.Fatal("region must be free text")
	}
	if !v.Allowed("region", "anything at all") {
		t.Fatal("free-text domains accept any value")
	}
}
