package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "midiwire.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `format: json
no_color: true
verbose: true
convert:
  output: out.mid
  export: msgpack
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want true")
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.Convert.Output != "out.mid" {
		t.Errorf("Convert.Output = %q, want %q", cfg.Convert.Output, "out.mid")
	}
	if cfg.Convert.Export != "msgpack" {
		t.Errorf("Convert.Export = %q, want %q", cfg.Convert.Export, "msgpack")
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "" || cfg.NoColor || cfg.Verbose {
		t.Errorf("empty config should yield zero values, got %+v", cfg)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("MIDIWIRE_FORMAT", "yaml")
	path := writeConfig(t, "format: ${MIDIWIRE_FORMAT}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want %q", cfg.Format, "yaml")
	}
}

func TestLoad_EnvDefault(t *testing.T) {
	path := writeConfig(t, "convert:\n  output: ${MIDIWIRE_OUT_12345:-default.mid}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Convert.Output != "default.mid" {
		t.Errorf("Convert.Output = %q, want %q", cfg.Convert.Output, "default.mid")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "format: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	path := writeConfig(t, "format: xml\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid format value")
	}
}

func TestLoad_InvalidExport(t *testing.T) {
	path := writeConfig(t, "convert:\n  export: csv\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid export value")
	}
}

func TestValidate_AllowsEmpty(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate on zero config = %v, want nil", err)
	}
}
