package astutil_test

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/astutil"
	"github.com/katichai/pyqa/internal/source"
)

const sample = `class Greeter:
    """Greets people."""

    def greet(self, name):
        """Say hello."""
        return "hello " + name

    def farewell(self, name):
        return "bye " + name
`

func parse(t *testing.T, content string) *source.Unit {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loader, err := source.NewLoader()
	require.NoError(t, err)
	t.Cleanup(loader.Close)

	unit, err := loader.ReadFile(path)
	require.NoError(t, err)
	t.Cleanup(unit.Close)
	return unit
}

func TestDocstring(t *testing.T) {
	unit := parse(t, sample)

	classNode := astutil.FindAll(unit.Tree.RootNode(), "class_definition")[0]
	doc := astutil.Docstring(astutil.BodyOf(classNode), unit.Content)
	require.Equal(t, "Greets people.", doc)
}

func TestNodeSourceAndNameOf(t *testing.T) {
	unit := parse(t, sample)

	classNode := astutil.FindAll(unit.Tree.RootNode(), "class_definition")[0]
	name, ok := astutil.NameOf(classNode.ChildByFieldName("name"), unit.Content)
	require.True(t, ok)
	require.Equal(t, "Greeter", name)

	methods := astutil.FindAll(classNode, "function_definition")
	require.Len(t, methods, 2)
	require.Equal(t, "greet", astutil.NodeSource(methods[0].ChildByFieldName("name"), unit.Content))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	unit := parse(t, sample)

	count := 0
	astutil.Walk(unit.Tree.RootNode(), func(n *sitter.Node) bool {
		count++
		return true
	})
	require.Greater(t, count, 0)
}
