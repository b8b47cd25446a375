package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexLocator(t *testing.T) {
	content := `
MyApp.Services.OrderService.Submit:
  file: src/Services/OrderService.cs
  line: 42
  body_start: 43
  body_end: 57
MyApp.Services.OrderService.ctor:
  file: src/Services/OrderService.cs
  line: 12
  body_start: 13
  body_end: 18
`
	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, err := LoadIndex(path)
	require.NoError(t, err)

	loc, ok := l.Locate("MyApp.dll", "MyApp.Services.OrderService", "Submit")
	require.True(t, ok)
	assert.Equal(t, "src/Services/OrderService.cs", loc.File)
	assert.Equal(t, uint32(42), loc.DeclarationLine)
	assert.Equal(t, uint32(57), loc.BodyEndLine)

	// Case-insensitive, matching canonical key comparison.
	_, ok = l.Locate("MyApp.dll", "myapp.services.orderservice", "submit")
	assert.True(t, ok)

	_, ok = l.Locate("MyApp.dll", "MyApp.Services.OrderService", "Cancel")
	assert.False(t, ok)
}

func TestLoadIndex_Missing(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadIndex_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	_, err := LoadIndex(path)
	assert.Error(t, err)
}

func TestSourceLocator(t *testing.T) {
	src := `namespace MyApp.Services
{
    public class OrderService
    {
        public OrderService()
        {
        }

        public void Submit(string id)
        {
            Validate(id);
        }

        private void Validate(string id)
        {
        }
    }
}
`
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Services"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Services", "OrderService.cs"), []byte(src), 0o644))

	l := NewSourceLocator(dir)

	loc, ok := l.Locate("MyApp.dll", "MyApp.Services.OrderService", "Submit")
	require.True(t, ok)
	assert.Equal(t, uint32(9), loc.DeclarationLine)
	assert.True(t, loc.BodyEndLine > loc.BodyStartLine)

	_, ok = l.Locate("MyApp.dll", "MyApp.Services.OrderService", "ctor")
	assert.True(t, ok)

	_, ok = l.Locate("MyApp.dll", "MyApp.Services.OrderService", "Missing")
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	content := `
MyApp.A.M:
  file: a.cs
  line: 1
`
	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	idx, err := LoadIndex(path)
	require.NoError(t, err)

	chain := Chain{NopLocator{}, idx}

	loc, ok := chain.Locate("m", "MyApp.A", "M")
	require.True(t, ok)
	assert.Equal(t, "a.cs", loc.File)

	_, ok = chain.Locate("m", "MyApp.A", "Other")
	assert.False(t, ok)
}

func TestNopLocator(t *testing.T) {
	_, ok := NopLocator{}.Locate("m", "T", "M")
	assert.False(t, ok)
}
