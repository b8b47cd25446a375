package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for deadcode.
type Config struct {
	// Extraction settings for the static inventory
	Extraction ExtractionConfig `koanf:"extraction" toml:"extraction"`

	// Trace ingestion settings
	Trace TraceConfig `koanf:"trace" toml:"trace"`

	// Identifier normalization settings
	Normalize NormalizeConfig `koanf:"normalize" toml:"normalize"`

	// Cache settings for parsed traces
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ExtractionConfig controls static inventory extraction.
type ExtractionConfig struct {
	// SourceRoot is scanned for method declarations when no symbol
	// index is available. Empty disables source location lookup.
	SourceRoot string `koanf:"source_root" toml:"source_root"`

	// SymbolIndex points at a portable symbol index file.
	SymbolIndex string `koanf:"symbol_index" toml:"symbol_index"`

	// GeneratedMarkers are substrings identifying compiler-synthesized
	// type names that never enter the inventory.
	GeneratedMarkers []string `koanf:"generated_markers" toml:"generated_markers"`
}

// TraceConfig controls execution-trace ingestion.
type TraceConfig struct {
	// DenyPrefixes lists platform namespaces whose JIT events are
	// discarded; only application-owned namespaces survive.
	DenyPrefixes []string `koanf:"deny_prefixes" toml:"deny_prefixes"`

	// AllowPrefixes, when non-empty, restricts retained events to the
	// listed namespace prefixes after the deny list is applied.
	AllowPrefixes []string `koanf:"allow_prefixes" toml:"allow_prefixes"`

	// RunnerTimeoutSeconds bounds an external capture run. Zero means
	// no timeout.
	RunnerTimeoutSeconds int `koanf:"runner_timeout_seconds" toml:"runner_timeout_seconds"`
}

// NormalizeConfig customizes the identifier normalizer.
type NormalizeConfig struct {
	// Aliases maps fully qualified type names to short spellings,
	// merged over the built-in primitive table.
	Aliases map[string]string `koanf:"aliases" toml:"aliases"`
}

// CacheConfig controls trace parse caching.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			GeneratedMarkers: []string{
				"<>c",
				"<PrivateImplementationDetails>",
				"d__",
				"DisplayClass",
			},
		},
		Trace: TraceConfig{
			DenyPrefixes: []string{
				"System",
				"Microsoft",
				"Internal",
				"Windows",
				"MS",
				"FxResources",
			},
			RunnerTimeoutSeconds: 120,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".deadcode/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"deadcode.toml",
		"deadcode.yaml",
		"deadcode.yml",
		"deadcode.json",
		".deadcode.toml",
		".deadcode.yaml",
		".deadcode.yml",
		".deadcode.json",
	}

	searchDirs := []string{".", ".deadcode"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// IsFrameworkNamespace reports whether a namespace belongs to the
// platform per the deny/allow prefix lists.
func (c *Config) IsFrameworkNamespace(ns string) bool {
	for _, prefix := range c.Trace.DenyPrefixes {
		if ns == prefix || strings.HasPrefix(ns, prefix+".") {
			return true
		}
	}
	if len(c.Trace.AllowPrefixes) == 0 {
		return false
	}
	for _, prefix := range c.Trace.AllowPrefixes {
		if ns == prefix || strings.HasPrefix(ns, prefix+".") {
			return false
		}
	}
	return true
}

// IsGeneratedTypeName reports whether a type name carries a
// compiler-synthesized marker.
func (c *Config) IsGeneratedTypeName(name string) bool {
	for _, marker := range c.Extraction.GeneratedMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
