package symbols

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/endjin/deadcode/pkg/models"
)

// indexEntry is one record in a portable symbol index file.
type indexEntry struct {
	File      string `yaml:"file"`
	Line      uint32 `yaml:"line"`
	BodyStart uint32 `yaml:"body_start"`
	BodyEnd   uint32 `yaml:"body_end"`
}

// IndexLocator serves locations from a YAML symbol index keyed by
// Type.Method. Lookup is case-insensitive, matching the canonical key
// comparison used everywhere else.
type IndexLocator struct {
	entries map[string]indexEntry
}

// LoadIndex reads a symbol index file.
func LoadIndex(path string) (*IndexLocator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbol index %s: %w", path, err)
	}

	var raw map[string]indexEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse symbol index %s: %w", path, err)
	}

	entries := make(map[string]indexEntry, len(raw))
	for key, e := range raw {
		entries[strings.ToLower(key)] = e
	}
	return &IndexLocator{entries: entries}, nil
}

// Locate looks up Type.Method in the index.
func (l *IndexLocator) Locate(module, typeName, methodName string) (*models.SourceLocation, bool) {
	e, ok := l.entries[strings.ToLower(typeName+"."+methodName)]
	if !ok {
		return nil, false
	}
	return &models.SourceLocation{
		File:            e.File,
		DeclarationLine: e.Line,
		BodyStartLine:   e.BodyStart,
		BodyEndLine:     e.BodyEnd,
	}, true
}
