package inventory

import (
	"context"
	"strings"

	"github.com/endjin/deadcode/internal/fileproc"
	"github.com/endjin/deadcode/pkg/config"
	"github.com/endjin/deadcode/pkg/metadata"
	"github.com/endjin/deadcode/pkg/models"
	"github.com/endjin/deadcode/pkg/symbols"
)

// Options configures inventory extraction.
type Options struct {
	// Config supplies generated-name markers. Nil falls back to defaults.
	Config *config.Config

	// Locator resolves source locations for extracted methods. Nil
	// disables location lookup.
	Locator symbols.Locator

	// MaxWorkers caps the parallel document loads. Zero picks a default
	// from the CPU count.
	MaxWorkers int

	// OnProgress is called once per document, loaded or failed.
	OnProgress func()

	// OnSkip is called for each document that could not be read. When
	// nil, unreadable documents fail the whole extraction.
	OnSkip func(path string, err error)
}

// Extractor builds a method inventory from module metadata documents.
type Extractor struct {
	classifier *Classifier
	opts       Options
}

// NewExtractor creates an extractor. Classification rules are fixed;
// only filtering and location lookup vary per run.
func NewExtractor(opts Options) *Extractor {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Locator == nil {
		opts.Locator = symbols.NopLocator{}
	}
	return &Extractor{classifier: NewClassifier(), opts: opts}
}

// moduleResult pairs a loaded document with its input position so the
// final inventory can be reassembled in input order regardless of which
// worker finished first.
type moduleResult struct {
	index int
	inv   *models.MethodInventory
}

// Extract loads every metadata document and returns the combined
// inventory. Documents load in parallel; records appear grouped by
// module in the order the paths were given.
func (e *Extractor) Extract(ctx context.Context, modulePaths []string) (*models.MethodInventory, error) {
	if len(modulePaths) == 0 {
		return &models.MethodInventory{}, nil
	}

	indexOf := make(map[string]int, len(modulePaths))
	for i, p := range modulePaths {
		indexOf[p] = i
	}

	results, errs := fileproc.ForEachPathWithContext(ctx, modulePaths,
		func(path string) (moduleResult, error) {
			inv, err := e.extractOne(path)
			if err != nil {
				return moduleResult{}, err
			}
			return moduleResult{index: indexOf[path], inv: inv}, nil
		}, e.opts.OnProgress)

	if errs != nil {
		if e.opts.OnSkip == nil {
			return nil, errs
		}
		for _, pe := range errs.Errors {
			e.opts.OnSkip(pe.Path, pe.Err)
		}
	}

	ordered := make([]*models.MethodInventory, len(modulePaths))
	for _, r := range results {
		ordered[r.index] = r.inv
	}

	combined := &models.MethodInventory{}
	for _, inv := range ordered {
		combined.Merge(inv)
	}
	return combined, nil
}

// extractOne reads one document inside a scoped reader. The reader is
// released on every exit path.
func (e *Extractor) extractOne(path string) (*models.MethodInventory, error) {
	r, err := metadata.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc := r.Document()
	inv := &models.MethodInventory{}
	for i := range doc.Types {
		t := &doc.Types[i]
		if !e.includeType(t) {
			continue
		}
		for j := range t.Members {
			m := &t.Members[j]
			if m.Modifiers.CompilerGenerated {
				continue
			}
			rec, err := e.record(doc.Module, t, m)
			if err != nil {
				return nil, err
			}
			inv.Add(rec)
		}
	}
	return inv, nil
}

// includeType drops type kinds that declare no removable method bodies
// and compiler-synthesized types.
func (e *Extractor) includeType(t *metadata.TypeDef) bool {
	switch strings.ToLower(t.Kind) {
	case "enum", "interface", "delegate":
		return false
	}
	return !e.opts.Config.IsGeneratedTypeName(t.Name)
}

func (e *Extractor) record(module string, t *metadata.TypeDef, m *metadata.Member) (models.MethodRecord, error) {
	name := m.Name
	switch m.Kind {
	case metadata.KindConstructor:
		name = "ctor"
	case metadata.KindStaticConstructor:
		name = "cctor"
	}

	tier, err := e.classifier.Classify(t, m)
	if err != nil {
		return models.MethodRecord{}, err
	}

	rec := models.MethodRecord{
		Module:     module,
		Type:       t.Name,
		Name:       name,
		Signature:  m.Signature,
		Visibility: models.ParseVisibility(m.Visibility),
		Tier:       tier,
	}

	if loc, ok := e.opts.Locator.Locate(module, t.Name, name); ok {
		rec.Location = loc
	}
	return rec, nil
}
