// Package redundancy reconciles a static method inventory with the set
// of methods observed executing, producing the redundancy report.
package redundancy

import (
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/endjin/deadcode/pkg/analyzer/trace"
	"github.com/endjin/deadcode/pkg/models"
	"github.com/endjin/deadcode/pkg/signature"
)

// ComparisonEngine performs the inventory-versus-executed comparison.
// It does no I/O and holds no state between calls; the same engine can
// compare one inventory against many executed sets.
type ComparisonEngine struct {
	normalizer *signature.Normalizer
}

// Option configures a comparison engine.
type Option func(*ComparisonEngine)

// WithNormalizer replaces the default normalizer. Comparison must use
// the same normalizer that produced the executed set, or keys from the
// two sides drift apart.
func WithNormalizer(n *signature.Normalizer) Option {
	return func(e *ComparisonEngine) {
		if n != nil {
			e.normalizer = n
		}
	}
}

// NewComparisonEngine creates a comparison engine.
func NewComparisonEngine(opts ...Option) *ComparisonEngine {
	e := &ComparisonEngine{normalizer: signature.NewNormalizer()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compare returns a report listing every inventory method whose key is
// absent from the executed set. Records in the do-not-remove tier never
// appear regardless of execution evidence. Report order follows
// inventory order.
func (e *ComparisonEngine) Compare(inv *models.MethodInventory, executed *trace.KeySet) *models.RedundancyReport {
	report := models.NewRedundancyReport()
	if inv == nil {
		return report
	}
	report.Metadata.Modules = inv.Modules()

	for _, m := range inv.Methods {
		if m.Tier == models.TierDoNotRemove {
			continue
		}
		// Metadata documents spell types the way reflection does
		// (generic arity backticks, nested-type plus signs). The
		// derived key goes through the same normalizer as trace
		// identifiers so both sides land in one canonical key space.
		if executed != nil && executed.Contains(e.normalizer.Normalize(m.Key())) {
			continue
		}
		report.Append(models.UnusedMethodRecord{
			ID:           recordID(m),
			Method:       m,
			Dependencies: []string{},
		})
	}
	return report
}

// recordID derives a stable identifier from the method's canonical key.
// The same method hashes to the same id across runs, so reports can be
// diffed between revisions.
func recordID(m models.MethodRecord) string {
	sum := xxhash.Sum64String(strings.ToLower(m.Module + "|" + m.Key()))
	return fmt.Sprintf("%016x", sum)
}

// ModuleStats summarizes how unused methods spread across modules.
type ModuleStats struct {
	Modules   int     `json:"modules"`
	Mean      float64 `json:"mean_per_module"`
	StdDev    float64 `json:"stddev_per_module"`
	Max       int     `json:"max_per_module"`
	MaxModule string  `json:"max_module,omitempty"`
}

// Stats computes the per-module distribution of unused methods. A
// report spanning fewer than two modules has zero deviation.
func Stats(r *models.RedundancyReport) ModuleStats {
	counts := make(map[string]int)
	for _, u := range r.Unused {
		counts[u.Method.Module]++
	}

	s := ModuleStats{Modules: len(counts)}
	if len(counts) == 0 {
		return s
	}

	values := make([]float64, 0, len(counts))
	for module, n := range counts {
		values = append(values, float64(n))
		if n > s.Max || (n == s.Max && module < s.MaxModule) {
			s.Max = n
			s.MaxModule = module
		}
	}

	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		if sd := stat.StdDev(values, nil); !math.IsNaN(sd) {
			s.StdDev = sd
		}
	}
	return s
}
