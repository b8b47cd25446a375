package symbols

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/endjin/deadcode/pkg/models"
)

// SourceLocator scans a C# source tree for method declarations when no
// symbol index is available. The scan is lazy: the tree is walked once,
// on first lookup, and cached for the locator's lifetime.
type SourceLocator struct {
	root string

	once    sync.Once
	entries map[string]models.SourceLocation
}

// NewSourceLocator creates a locator over a source root directory.
func NewSourceLocator(root string) *SourceLocator {
	return &SourceLocator{root: root}
}

// Locate finds the declaration of Type.Method in the scanned sources.
func (l *SourceLocator) Locate(module, typeName, methodName string) (*models.SourceLocation, bool) {
	l.once.Do(l.scan)

	loc, ok := l.entries[strings.ToLower(typeName+"."+methodName)]
	if !ok {
		return nil, false
	}
	return &loc, true
}

// scan walks the source root and indexes every method and constructor
// declaration. Unreadable or unparseable files are skipped; symbol
// lookup is advisory and must never fail extraction.
func (l *SourceLocator) scan() {
	l.entries = make(map[string]models.SourceLocation)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())

	filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".cs") {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		tree, err := parser.ParseCtx(context.Background(), nil, source)
		if err != nil {
			return nil
		}
		defer tree.Close()

		l.indexNode(tree.RootNode(), source, path, "", "")
		return nil
	})
}

// indexNode walks the AST carrying the enclosing namespace and type names.
func (l *SourceLocator) indexNode(node *sitter.Node, source []byte, path, namespace, typeName string) {
	switch node.Type() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			namespace = joinDotted(namespace, name.Content(source))
		}

	case "class_declaration", "struct_declaration", "record_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			typeName = joinDotted(joinDotted(namespace, typeName), name.Content(source))
			namespace = ""
		}

	case "method_declaration":
		if name := node.ChildByFieldName("name"); name != nil && typeName != "" {
			l.add(typeName+"."+name.Content(source), node, source, path)
		}
		return

	case "constructor_declaration":
		if typeName != "" {
			l.add(typeName+".ctor", node, source, path)
		}
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		l.indexNode(node.NamedChild(i), source, path, namespace, typeName)
	}
}

func (l *SourceLocator) add(key string, node *sitter.Node, source []byte, path string) {
	loc := models.SourceLocation{
		File:            path,
		DeclarationLine: node.StartPoint().Row + 1,
		BodyStartLine:   node.StartPoint().Row + 1,
		BodyEndLine:     node.EndPoint().Row + 1,
	}
	if body := node.ChildByFieldName("body"); body != nil {
		loc.BodyStartLine = body.StartPoint().Row + 1
		loc.BodyEndLine = body.EndPoint().Row + 1
	}

	key = strings.ToLower(key)
	// First declaration wins; overloads share a location anyway.
	if _, exists := l.entries[key]; !exists {
		l.entries[key] = loc
	}
}

func joinDotted(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "." + b
}
