package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/source"
)

func TestReadFileParsesValidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("def greet():\n    return 'héllo'\n"), 0o644))

	loader, err := source.NewLoader()
	require.NoError(t, err)
	defer loader.Close()

	unit, err := loader.ReadFile(path)
	require.NoError(t, err)
	defer unit.Close()

	assert.Equal(t, path, unit.Path)
	assert.NotNil(t, unit.Tree)
	assert.NotNil(t, unit.Tree.RootNode())
}

func TestReadFileFallsBackToLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.py")
	// 0xe9 is Latin-1 'é' but not valid as a standalone UTF-8 byte.
	raw := []byte("name = \"caf\xe9\"\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loader, err := source.NewLoader()
	require.NoError(t, err)
	defer loader.Close()

	unit, err := loader.ReadFile(path)
	require.NoError(t, err)
	defer unit.Close()

	assert.Contains(t, string(unit.Content), "café")
}

func TestReadFileRejectsSyntacticallyBrokenSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.py")
	// An unterminated string literal: the grammar cannot close the token,
	// so the parsed root node is left marked as erroneous even though
	// tree-sitter's error tolerance still returns a non-nil tree.
	require.NoError(t, os.WriteFile(path, []byte("x = \"unterminated\n"), 0o644))

	loader, err := source.NewLoader()
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.ReadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrParse)
}

func TestReadFileMissingPathIsError(t *testing.T) {
	loader, err := source.NewLoader()
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.ReadFile(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrUnreadable)
}

func TestEnumerateSkipsHiddenAndVendoredDirectories(t *testing.T) {
	dir := t.TempDir()

	write := func(rel, content string) {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	write("top.py", "x = 1\n")
	write("pkg/inner.py", "y = 2\n")
	write(".hidden/skip.py", "z = 3\n")
	write("venv/skip.py", "z = 3\n")
	write("__pycache__/skip.py", "z = 3\n")
	write("node_modules/skip.py", "z = 3\n")
	write("notes.txt", "not python\n")

	files, err := source.Enumerate(dir, nil)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rels = append(rels, rel)
	}

	assert.ElementsMatch(t, []string{"top.py", filepath.Join("pkg", "inner.py")}, rels)
}

func TestEnumerateReturnsSortedOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.py", "a.py", "b.py"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o644))
	}

	files, err := source.Enumerate(dir, nil)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, files[0] < files[1] && files[1] < files[2])
}

func TestEnumerateHonorsExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	write("app.py", "x = 1\n")
	write("test_app.py", "x = 1\n")
	write("migrations/0001_initial.py", "x = 1\n")

	files, err := source.Enumerate(dir, []string{"test_*.py", "**/migrations/**"})
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rels = append(rels, rel)
	}
	assert.Equal(t, []string{"app.py"}, rels)
}
