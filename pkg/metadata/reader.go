package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("decode embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("metadata.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("register embedded schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("metadata.schema.json")
	})
	return schema, schemaErr
}

// Reader is a scoped handle on one module metadata document. Callers must
// Close it when extraction finishes, on every exit path.
type Reader struct {
	path   string
	doc    *Document
	closed bool
}

// Open loads and validates a module metadata document.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module metadata %s: %w", path, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse module metadata %s: %w", path, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("invalid module metadata %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode module metadata %s: %w", path, err)
	}

	return &Reader{path: path, doc: &doc}, nil
}

// Path returns the file the reader was opened from.
func (r *Reader) Path() string {
	return r.path
}

// Document returns the loaded document, or nil after Close.
func (r *Reader) Document() *Document {
	if r.closed {
		return nil
	}
	return r.doc
}

// Close releases the document. Closing twice is harmless.
func (r *Reader) Close() error {
	r.doc = nil
	r.closed = true
	return nil
}
