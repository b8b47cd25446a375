// Package analysis orchestrates the full dead-method pipeline:
// inventory extraction, trace ingestion, comparison, and report
// assembly.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/endjin/deadcode/internal/cache"
	"github.com/endjin/deadcode/internal/vcs"
	"github.com/endjin/deadcode/pkg/analyzer/inventory"
	"github.com/endjin/deadcode/pkg/analyzer/redundancy"
	"github.com/endjin/deadcode/pkg/analyzer/trace"
	"github.com/endjin/deadcode/pkg/config"
	"github.com/endjin/deadcode/pkg/models"
	"github.com/endjin/deadcode/pkg/signature"
	"github.com/endjin/deadcode/pkg/symbols"
)

// Service orchestrates dead-method analysis operations.
type Service struct {
	config  *config.Config
	cache   *cache.Cache
	locator symbols.Locator
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithCache sets the trace parse cache (for testing).
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLocator overrides the source-location provider built from config.
func WithLocator(l symbols.Locator) Option {
	return func(s *Service) {
		s.locator = l
	}
}

// New creates an analysis service.
func New(opts ...Option) *Service {
	s := &Service{config: config.LoadOrDefault()}
	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		c, err := cache.New(s.config.Cache.Dir, s.config.Cache.TTL, s.config.Cache.Enabled)
		if err != nil {
			// A broken cache directory degrades to no caching.
			c, _ = cache.New("", 0, false)
		}
		s.cache = c
	}
	if s.locator == nil {
		s.locator = buildLocator(s.config)
	}
	return s
}

// buildLocator assembles the source-location chain from config: symbol
// index first, source scan as fallback. Locator failures never abort
// extraction; a method without a location simply has none.
func buildLocator(cfg *config.Config) symbols.Locator {
	var chain symbols.Chain
	if path := cfg.Extraction.SymbolIndex; path != "" {
		if idx, err := symbols.LoadIndex(path); err == nil {
			chain = append(chain, idx)
		}
	}
	if root := cfg.Extraction.SourceRoot; root != "" {
		chain = append(chain, symbols.NewSourceLocator(root))
	}
	if len(chain) == 0 {
		return symbols.NopLocator{}
	}
	return chain
}

// ExtractOptions configures inventory extraction.
type ExtractOptions struct {
	MaxWorkers int
	OnProgress func()
	OnSkip     func(path string, err error)
}

// ExtractInventory loads module metadata documents and returns the
// classified method inventory.
func (s *Service) ExtractInventory(ctx context.Context, modulePaths []string, opts ExtractOptions) (*models.MethodInventory, error) {
	e := inventory.NewExtractor(inventory.Options{
		Config:     s.config,
		Locator:    s.locator,
		MaxWorkers: opts.MaxWorkers,
		OnProgress: opts.OnProgress,
		OnSkip:     opts.OnSkip,
	})
	return e.Extract(ctx, modulePaths)
}

// TraceOptions configures trace ingestion.
type TraceOptions struct {
	OnProgress func()
	OnSkip     func(path string, err error)
}

// TraceResult is the union of every ingested trace plus the scenario
// labels derived from the file names.
type TraceResult struct {
	Executed  *trace.KeySet
	Scenarios []string
}

// ParseTraces ingests trace files and unions their key sets. A
// malformed file is skipped through OnSkip when set; without the
// callback the first failure aborts. Cached results are reused when the
// trace file content is unchanged.
func (s *Service) ParseTraces(tracePaths []string, opts TraceOptions) (*TraceResult, error) {
	parser := trace.NewParser(s.config, signature.NewNormalizer(
		signature.WithAliases(s.config.Normalize.Aliases)))

	result := &TraceResult{Executed: parser.NewSet()}
	for _, path := range tracePaths {
		set, err := s.parseOne(parser, path)
		if opts.OnProgress != nil {
			opts.OnProgress()
		}
		if err != nil {
			if opts.OnSkip == nil {
				return nil, err
			}
			opts.OnSkip(path, err)
			continue
		}
		result.Executed.Union(set)
		result.Scenarios = append(result.Scenarios, scenarioName(path))
	}
	return result, nil
}

func (s *Service) parseOne(parser *trace.Parser, path string) (*trace.KeySet, error) {
	hash, err := cache.HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", trace.ErrTraceNotFound, path)
	}

	if data, ok := s.cache.GetWithHash(path, hash); ok {
		var keys []string
		if err := json.Unmarshal(data, &keys); err == nil {
			set := parser.NewSet()
			for _, k := range keys {
				set.Add(k)
			}
			return set, nil
		}
	}

	set, err := parser.Parse(path)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(set.Keys()); err == nil {
		_ = s.cache.SetWithHash(path, hash, data)
	}
	return set, nil
}

// scenarioName derives the scenario label from a trace file name.
func scenarioName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AnalyzeOptions configures a full analysis run.
type AnalyzeOptions struct {
	ModulePaths []string
	TracePaths  []string

	// RepoPath stamps the report with the source revision when it lies
	// inside a git checkout. Empty skips the stamp.
	RepoPath string

	Extract ExtractOptions
	Trace   TraceOptions
}

// Analyze runs the whole pipeline and returns the redundancy report.
func (s *Service) Analyze(ctx context.Context, opts AnalyzeOptions) (*models.RedundancyReport, error) {
	inv, err := s.ExtractInventory(ctx, opts.ModulePaths, opts.Extract)
	if err != nil {
		return nil, err
	}

	traces, err := s.ParseTraces(opts.TracePaths, opts.Trace)
	if err != nil {
		return nil, err
	}

	engine := redundancy.NewComparisonEngine(redundancy.WithNormalizer(
		signature.NewNormalizer(signature.WithAliases(s.config.Normalize.Aliases))))
	report := engine.Compare(inv, traces.Executed)
	report.Metadata.Scenarios = traces.Scenarios
	if opts.RepoPath != "" {
		report.Metadata.Revision = vcs.RevisionOrEmpty(opts.RepoPath)
	}
	return report, nil
}
