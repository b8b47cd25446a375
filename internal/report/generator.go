// Package report renders redundancy reports for persistence and for
// terminal display.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/endjin/deadcode/internal/output"
	"github.com/endjin/deadcode/pkg/analyzer/redundancy"
	"github.com/endjin/deadcode/pkg/models"
)

// Entry is one persisted unused-method record. Only records with a
// known source location are serialized; the rest remain visible through
// the summary counts.
type Entry struct {
	File         string   `json:"file"`
	Line         uint32   `json:"line"`
	Method       string   `json:"method"`
	Dependencies []string `json:"dependencies"`
}

// Document is the persisted report shape, grouped by confidence tier.
type Document struct {
	Metadata         models.ReportMetadata  `json:"metadata"`
	HighConfidence   []Entry                `json:"highConfidence"`
	MediumConfidence []Entry                `json:"mediumConfidence"`
	LowConfidence    []Entry                `json:"lowConfidence"`
	Summary          models.ReportSummary   `json:"summary"`
	ModuleStats      redundancy.ModuleStats `json:"moduleStats"`
}

// Generator turns a redundancy report into its persisted and displayed
// forms.
type Generator struct{}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Build produces the persisted document for a report.
func (g *Generator) Build(r *models.RedundancyReport) *Document {
	doc := &Document{
		Metadata:         r.Metadata,
		HighConfidence:   []Entry{},
		MediumConfidence: []Entry{},
		LowConfidence:    []Entry{},
		Summary:          r.Summary(),
		ModuleStats:      redundancy.Stats(r),
	}

	for _, u := range r.Unused {
		file, ok := u.File()
		if !ok {
			continue
		}
		line, _ := u.Line()
		entry := Entry{
			File:         file,
			Line:         line,
			Method:       u.Method.Key(),
			Dependencies: u.Dependencies,
		}
		switch u.Method.Tier {
		case models.TierHigh:
			doc.HighConfidence = append(doc.HighConfidence, entry)
		case models.TierMedium:
			doc.MediumConfidence = append(doc.MediumConfidence, entry)
		case models.TierLow:
			doc.LowConfidence = append(doc.LowConfidence, entry)
		}
	}
	return doc
}

// Load reads a previously persisted report document.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer f.Close()

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &doc, nil
}

// Write persists the document as indented JSON.
func (g *Generator) Write(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// View adapts a report for the output formatter.
type View struct {
	Report *models.RedundancyReport
	Doc    *Document
}

// NewView builds the displayable view of a report.
func (g *Generator) NewView(r *models.RedundancyReport) *View {
	return &View{Report: r, Doc: g.Build(r)}
}

func (v *View) RenderData() any {
	return v.Doc
}

// tierOrder fixes the display order, most actionable first.
var tierOrder = []models.SafetyTier{models.TierHigh, models.TierMedium, models.TierLow}

var tierLabels = map[models.SafetyTier]string{
	models.TierHigh:   "High confidence",
	models.TierMedium: "Medium confidence",
	models.TierLow:    "Low confidence",
}

func (v *View) tables() []*output.Table {
	groups := v.Report.ByTier()

	var tables []*output.Table
	for _, tier := range tierOrder {
		records := groups[tier]
		if len(records) == 0 {
			continue
		}

		rows := make([][]string, 0, len(records))
		for _, u := range records {
			loc := "-"
			if file, ok := u.File(); ok {
				line, _ := u.Line()
				loc = fmt.Sprintf("%s:%d", file, line)
			}
			rows = append(rows, []string{u.Method.Key(), u.Method.Module, loc})
		}
		tables = append(tables, output.NewTable(
			fmt.Sprintf("%s (%d)", tierLabels[tier], len(records)),
			[]string{"Method", "Module", "Location"},
			rows, nil, nil))
	}
	return tables
}

func (v *View) RenderText(w io.Writer, colored bool) error {
	for _, tbl := range v.tables() {
		if err := tbl.RenderText(w, colored); err != nil {
			return err
		}
	}
	return v.renderSummary(w, colored)
}

func (v *View) RenderMarkdown(w io.Writer) error {
	for _, tbl := range v.tables() {
		if err := tbl.RenderMarkdown(w); err != nil {
			return err
		}
	}
	return v.renderSummary(w, false)
}

func (v *View) renderSummary(w io.Writer, colored bool) error {
	return renderSummary(w, colored, v.Doc.Summary)
}

// DocView renders a persisted document without the originating report,
// so saved reports can be re-displayed in any format.
type DocView struct {
	Doc *Document
}

func (v *DocView) RenderData() any {
	return v.Doc
}

func (v *DocView) tables() []*output.Table {
	groups := []struct {
		tier    models.SafetyTier
		entries []Entry
	}{
		{models.TierHigh, v.Doc.HighConfidence},
		{models.TierMedium, v.Doc.MediumConfidence},
		{models.TierLow, v.Doc.LowConfidence},
	}

	var tables []*output.Table
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		rows := make([][]string, 0, len(g.entries))
		for _, e := range g.entries {
			rows = append(rows, []string{e.Method, fmt.Sprintf("%s:%d", e.File, e.Line)})
		}
		tables = append(tables, output.NewTable(
			fmt.Sprintf("%s (%d)", tierLabels[g.tier], len(g.entries)),
			[]string{"Method", "Location"},
			rows, nil, nil))
	}
	return tables
}

func (v *DocView) RenderText(w io.Writer, colored bool) error {
	for _, tbl := range v.tables() {
		if err := tbl.RenderText(w, colored); err != nil {
			return err
		}
	}
	return renderSummary(w, colored, v.Doc.Summary)
}

func (v *DocView) RenderMarkdown(w io.Writer) error {
	for _, tbl := range v.tables() {
		if err := tbl.RenderMarkdown(w); err != nil {
			return err
		}
	}
	return renderSummary(w, false, v.Doc.Summary)
}

func renderSummary(w io.Writer, colored bool, s models.ReportSummary) error {

	heading := "Summary"
	if colored {
		heading = color.New(color.Bold).Sprint(heading)
	}
	fmt.Fprintf(w, "%s: %d unused methods (%d high, %d medium, %d low), %d with source location\n",
		heading, s.Total, s.High, s.Medium, s.Low, s.WithLocation)

	if len(s.ByModule) > 0 {
		modules := make([]string, 0, len(s.ByModule))
		for m := range s.ByModule {
			modules = append(modules, m)
		}
		sort.Strings(modules)
		for _, m := range modules {
			fmt.Fprintf(w, "  %s: %d\n", m, s.ByModule[m])
		}
	}
	return nil
}
