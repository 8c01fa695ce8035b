package principles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/source"
)

// parseUnit writes content to a temp file and parses it, for tests that
// need a real tree-sitter-python tree rather than hand-built nodes.
func parseUnit(t *testing.T, content string) *source.Unit {
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
