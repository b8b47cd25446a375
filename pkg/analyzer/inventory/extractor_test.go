package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endjin/deadcode/pkg/models"
	"github.com/endjin/deadcode/pkg/symbols"
)

const ordersDoc = `{
  "module": "App.Orders.dll",
  "types": [
    {
      "name": "App.Orders.OrderService",
      "kind": "class",
      "members": [
        {"name": "OrderService", "kind": "constructor", "visibility": "public"},
        {"name": "OrderService", "kind": "staticConstructor", "visibility": "private", "modifiers": {"static": true}},
        {"name": "Submit", "kind": "method", "visibility": "public", "signature": "(string)"},
        {"name": "buildIndex", "kind": "method", "visibility": "private"},
        {"name": "<Submit>b__0", "kind": "method", "visibility": "private", "modifiers": {"compilerGenerated": true}}
      ]
    },
    {
      "name": "App.Orders.OrderService+<>c",
      "kind": "class",
      "members": [
        {"name": "<Submit>b__1_0", "kind": "method", "visibility": "internal"}
      ]
    },
    {
      "name": "App.Orders.IOrderStore",
      "kind": "interface",
      "members": [
        {"name": "Save", "kind": "method", "visibility": "public"}
      ]
    },
    {
      "name": "App.Orders.OrderState",
      "kind": "enum"
    }
  ]
}`

const billingDoc = `{
  "module": "App.Billing.dll",
  "types": [
    {
      "name": "App.Billing.Invoice",
      "kind": "class",
      "members": [
        {"name": "Total", "kind": "method", "visibility": "public"}
      ]
    }
  ]
}`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	orders := writeDoc(t, dir, "orders.json", ordersDoc)

	e := NewExtractor(Options{})
	inv, err := e.Extract(context.Background(), []string{orders})
	require.NoError(t, err)

	// Constructors enter under their canonical names; the generated
	// member, the closure type, the interface and the enum are dropped.
	var keys []string
	for _, m := range inv.Methods {
		keys = append(keys, m.Key())
	}
	assert.Equal(t, []string{
		"App.Orders.OrderService.ctor",
		"App.Orders.OrderService.cctor",
		"App.Orders.OrderService.Submit",
		"App.Orders.OrderService.buildIndex",
	}, keys)

	byName := make(map[string]models.MethodRecord)
	for _, m := range inv.Methods {
		byName[m.Name] = m
	}
	assert.Equal(t, models.TierLow, byName["Submit"].Tier)
	assert.Equal(t, models.TierHigh, byName["buildIndex"].Tier)
	assert.Equal(t, "App.Orders.dll", byName["ctor"].Module)
}

func TestExtractor_OrderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	orders := writeDoc(t, dir, "orders.json", ordersDoc)
	billing := writeDoc(t, dir, "billing.json", billingDoc)

	e := NewExtractor(Options{})
	inv, err := e.Extract(context.Background(), []string{billing, orders})
	require.NoError(t, err)

	// Records come back grouped by input path order even though the
	// documents load concurrently.
	require.Equal(t, 5, inv.Len())
	assert.Equal(t, "App.Billing.dll", inv.Methods[0].Module)
	assert.Equal(t, "App.Orders.dll", inv.Methods[1].Module)
}

func TestExtractor_SkipCallback(t *testing.T) {
	dir := t.TempDir()
	orders := writeDoc(t, dir, "orders.json", ordersDoc)
	missing := filepath.Join(dir, "missing.json")

	var skipped []string
	e := NewExtractor(Options{
		OnSkip: func(path string, err error) { skipped = append(skipped, path) },
	})

	inv, err := e.Extract(context.Background(), []string{orders, missing})
	require.NoError(t, err)
	assert.Equal(t, []string{missing}, skipped)
	assert.Equal(t, 4, inv.Len())
}

func TestExtractor_UnreadableFailsWithoutCallback(t *testing.T) {
	e := NewExtractor(Options{})
	_, err := e.Extract(context.Background(), []string{"does-not-exist.json"})
	assert.Error(t, err)
}

func TestExtractor_InvalidDocumentRejected(t *testing.T) {
	dir := t.TempDir()
	bad := writeDoc(t, dir, "bad.json", `{"types": []}`)

	e := NewExtractor(Options{})
	_, err := e.Extract(context.Background(), []string{bad})
	assert.Error(t, err)
}

func TestExtractor_EmptyInput(t *testing.T) {
	e := NewExtractor(Options{})
	inv, err := e.Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Len())
}

func TestExtractor_LocatorAttachesLocations(t *testing.T) {
	dir := t.TempDir()
	orders := writeDoc(t, dir, "orders.json", ordersDoc)

	loc := &models.SourceLocation{File: "OrderService.cs", DeclarationLine: 12}
	e := NewExtractor(Options{Locator: stubLocator{key: "App.Orders.OrderService.Submit", loc: loc}})

	inv, err := e.Extract(context.Background(), []string{orders})
	require.NoError(t, err)

	for _, m := range inv.Methods {
		if m.Name == "Submit" {
			require.NotNil(t, m.Location)
			assert.Equal(t, uint32(12), m.Location.DeclarationLine)
		} else {
			assert.Nil(t, m.Location)
		}
	}
}

type stubLocator struct {
	key string
	loc *models.SourceLocation
}

func (s stubLocator) Locate(module, typeName, methodName string) (*models.SourceLocation, bool) {
	if typeName+"."+methodName == s.key {
		return s.loc, true
	}
	return nil, false
}

var _ symbols.Locator = stubLocator{}
