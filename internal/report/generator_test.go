package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endjin/deadcode/pkg/models"
)

func sampleReport() *models.RedundancyReport {
	r := models.NewRedundancyReport()
	r.Metadata.Modules = []string{"app.dll"}
	r.Metadata.Scenarios = []string{"checkout"}

	r.Append(models.UnusedMethodRecord{
		ID: "0000000000000001",
		Method: models.MethodRecord{
			Module: "app.dll", Type: "App.Svc", Name: "Hidden", Tier: models.TierHigh,
			Location: &models.SourceLocation{File: "Svc.cs", DeclarationLine: 40},
		},
		Dependencies: []string{},
	})
	r.Append(models.UnusedMethodRecord{
		ID: "0000000000000002",
		Method: models.MethodRecord{
			Module: "app.dll", Type: "App.Svc", Name: "NoSymbols", Tier: models.TierHigh,
		},
		Dependencies: []string{},
	})
	r.Append(models.UnusedMethodRecord{
		ID: "0000000000000003",
		Method: models.MethodRecord{
			Module: "app.dll", Type: "App.Svc", Name: "Render", Tier: models.TierMedium,
			Location: &models.SourceLocation{File: "Svc.cs", DeclarationLine: 55},
		},
		Dependencies: []string{},
	})
	return r
}

func TestGenerator_BuildOmitsLocationlessRecords(t *testing.T) {
	doc := NewGenerator().Build(sampleReport())

	// The record without a source location leaves the arrays but stays
	// in the counts.
	require.Len(t, doc.HighConfidence, 1)
	assert.Equal(t, "App.Svc.Hidden", doc.HighConfidence[0].Method)
	assert.Equal(t, uint32(40), doc.HighConfidence[0].Line)
	require.Len(t, doc.MediumConfidence, 1)
	assert.Empty(t, doc.LowConfidence)

	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, 2, doc.Summary.High)
	assert.Equal(t, 2, doc.Summary.WithLocation)
}

func TestGenerator_WriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	g := NewGenerator()
	require.NoError(t, g.Write(g.Build(sampleReport()), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.HighConfidence, 1)
	assert.Equal(t, []string{"checkout"}, doc.Metadata.Scenarios)

	// Tier arrays serialize even when empty.
	assert.Contains(t, string(data), `"lowConfidence": []`)
}

func TestView_RenderText(t *testing.T) {
	g := NewGenerator()
	var buf bytes.Buffer
	require.NoError(t, g.NewView(sampleReport()).RenderText(&buf, false))

	out := buf.String()
	assert.Contains(t, out, "High confidence (2)")
	assert.Contains(t, out, "App.Svc.Hidden")
	assert.Contains(t, out, "Svc.cs:40")
	assert.Contains(t, out, "Summary: 3 unused methods")
}

func TestView_RenderMarkdown(t *testing.T) {
	g := NewGenerator()
	var buf bytes.Buffer
	require.NoError(t, g.NewView(sampleReport()).RenderMarkdown(&buf))

	out := buf.String()
	assert.Contains(t, out, "## High confidence (2)")
	assert.Contains(t, out, "| Method | Module | Location |")
	assert.Contains(t, out, "| App.Svc.NoSymbols | app.dll | - |")
}

func TestLoad_RendersWithoutOriginalReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	g := NewGenerator()
	require.NoError(t, g.Write(g.Build(sampleReport()), path))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.MediumConfidence, 1)

	var buf bytes.Buffer
	require.NoError(t, (&DocView{Doc: doc}).RenderText(&buf, false))
	out := buf.String()
	assert.Contains(t, out, "High confidence (1)")
	assert.Contains(t, out, "Svc.cs:40")
	assert.Contains(t, out, "Summary: 3 unused methods")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
