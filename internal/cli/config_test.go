package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ericfitz/tmi-report/observability"
)

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.toml")
	data := `
page_size = "A4"
margin_size = "narrow"
language = "de-DE"
data_classification = "CONFIDENTIAL"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.PageSize != "A4" || cfg.MarginSize != "narrow" {
		t.Errorf("geometry = %q/%q", cfg.PageSize, cfg.MarginSize)
	}
	if cfg.Language != "de-DE" || cfg.DataClassification != "CONFIDENTIAL" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("loadConfig succeeded on a missing file")
	}
}

func TestKeyvalsPairing(t *testing.T) {
	got := keyvals([]observability.Field{
		observability.String("language", "ja-JP"),
		observability.Int("page_count", 4),
	})
	want := []interface{}{"language", "ja-JP", "page_count", 4}
	if len(got) != len(want) {
		t.Fatalf("keyvals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyvals[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
