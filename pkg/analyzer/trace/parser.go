package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/endjin/deadcode/pkg/config"
	"github.com/endjin/deadcode/pkg/signature"
)

// ErrTraceNotFound is returned when the trace file does not exist.
// Callers distinguish it from malformed-input errors: a missing file
// fails the parse call, a damaged one is a partial-resource problem.
var ErrTraceNotFound = errors.New("trace file not found")

// Parser reduces trace files to canonical key sets. The input shape is
// detected from content, never declared by the caller. A single parser
// may serve many files; the resulting sets share its interner and union
// cheaply.
type Parser struct {
	cfg        *config.Config
	normalizer *signature.Normalizer
	interner   *Interner
}

// NewParser creates a parser. A nil config falls back to the default
// namespace deny list; a nil normalizer gets the default alias table.
func NewParser(cfg *config.Config, n *signature.Normalizer) *Parser {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if n == nil {
		n = signature.NewNormalizer()
	}
	return &Parser{cfg: cfg, normalizer: n, interner: NewInterner()}
}

// NewSet returns an empty key set sharing the parser's interner, for
// accumulating unions across files.
func (p *Parser) NewSet() *KeySet {
	return NewKeySet(p.interner)
}

// Parse reads one trace file and returns its canonical key set.
// Parsing the same file twice yields equal sets.
func (p *Parser) Parse(path string) (*KeySet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTraceNotFound, path)
		}
		return nil, fmt.Errorf("open trace %s: %w", path, err)
	}
	defer f.Close()

	set, err := p.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return set, nil
}

// ParseReader parses a trace stream of either shape.
func (p *Parser) ParseReader(r io.Reader) (*KeySet, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(Magic))
	if err != nil && err != io.EOF {
		return nil, err
	}

	if bytes.Equal(head, []byte(Magic)) {
		return p.parseBinary(br)
	}
	return p.parseText(br)
}

func (p *Parser) parseBinary(r io.Reader) (*KeySet, error) {
	br, err := NewBinaryReader(r)
	if err != nil {
		return nil, err
	}

	set := p.NewSet()
	for {
		ev, err := br.Next()
		if err == io.EOF {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		if p.cfg.IsFrameworkNamespace(ev.Namespace) {
			continue
		}
		set.Add(p.normalizer.Normalize(ev.Identifier()))
	}
}

func (p *Parser) parseText(r io.Reader) (*KeySet, error) {
	tr := NewTextReader(r)

	set := p.NewSet()
	for {
		id, err := tr.Next()
		if err == io.EOF {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		set.Add(p.normalizer.Normalize(id))
	}
}
