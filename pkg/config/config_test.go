package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Trace.DenyPrefixes) == 0 {
		t.Error("default config should deny platform namespaces")
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("default format = %q, expected text", cfg.Output.Format)
	}
	if cfg.Trace.RunnerTimeoutSeconds <= 0 {
		t.Error("runner timeout should default to a positive bound")
	}
}

func TestLoad_TOML(t *testing.T) {
	content := `
[trace]
deny_prefixes = ["System"]
allow_prefixes = ["MyApp"]

[normalize]
[normalize.aliases]
"MyCompany.Money" = "money"

[output]
format = "json"
`
	path := filepath.Join(t.TempDir(), "deadcode.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Trace.DenyPrefixes) != 1 || cfg.Trace.DenyPrefixes[0] != "System" {
		t.Errorf("DenyPrefixes = %v", cfg.Trace.DenyPrefixes)
	}
	if cfg.Normalize.Aliases["MyCompany.Money"] != "money" {
		t.Errorf("Aliases = %v", cfg.Normalize.Aliases)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
	// Untouched sections keep their defaults.
	if !cfg.Cache.Enabled {
		t.Error("cache default should survive partial config")
	}
}

func TestLoad_YAML(t *testing.T) {
	content := `
trace:
  deny_prefixes:
    - System
    - Microsoft
output:
  format: markdown
  color: false
`
	path := filepath.Join(t.TempDir(), "deadcode.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Trace.DenyPrefixes) != 2 {
		t.Errorf("DenyPrefixes = %v", cfg.Trace.DenyPrefixes)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestIsFrameworkNamespace(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		ns       string
		expected bool
	}{
		{"System", true},
		{"System.Linq", true},
		{"Microsoft.Extensions.Logging", true},
		{"MyApp.Services", false},
		{"SystemOfRecord", false}, // prefix match is namespace-aware
		{"", false},
	}

	for _, tt := range tests {
		if got := cfg.IsFrameworkNamespace(tt.ns); got != tt.expected {
			t.Errorf("IsFrameworkNamespace(%q) = %v, expected %v", tt.ns, got, tt.expected)
		}
	}
}

func TestIsFrameworkNamespace_AllowList(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trace.AllowPrefixes = []string{"MyApp"}

	if cfg.IsFrameworkNamespace("MyApp.Services") {
		t.Error("allow-listed namespace should be retained")
	}
	if !cfg.IsFrameworkNamespace("OtherVendor.Lib") {
		t.Error("namespaces outside the allow list should be discarded")
	}
	if !cfg.IsFrameworkNamespace("System.Linq") {
		t.Error("deny list applies before allow list")
	}
}

func TestIsGeneratedTypeName(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		expected bool
	}{
		{"MyApp.Service", false},
		{"MyApp.Service+<>c", true},
		{"MyApp.Service+<Fetch>d__3", true},
		{"MyApp.Service+<>c__DisplayClass2_0", true},
		{"<PrivateImplementationDetails>", true},
	}

	for _, tt := range tests {
		if got := cfg.IsGeneratedTypeName(tt.name); got != tt.expected {
			t.Errorf("IsGeneratedTypeName(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}
