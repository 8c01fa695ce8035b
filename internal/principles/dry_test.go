package principles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/principles"
	"github.com/katichai/pyqa/internal/source"
)

const dryDuplicateBlock = `def step_one():
    x = 1
    y = 2
    z = x + y
    return z
`

func writePythonFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDRYDetectsDuplicateBlockAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := writePythonFile(t, dir, "a.py", dryDuplicateBlock)
	pathB := writePythonFile(t, dir, "b.py", dryDuplicateBlock)

	loader, err := source.NewLoader()
	require.NoError(t, err)
	t.Cleanup(loader.Close)

	dry := principles.NewDRY(principles.DefaultDRYConfig())

	unitA, err := loader.ReadFile(pathA)
	require.NoError(t, err)
	defer unitA.Close()
	resultA := dry.AnalyzeFileImpl(unitA.Path, unitA.Content, unitA.Tree)
	assert.Empty(t, resultA.SubRecords, "first occurrence should not yet be flagged as duplicate")

	unitB, err := loader.ReadFile(pathB)
	require.NoError(t, err)
	defer unitB.Close()
	resultB := dry.AnalyzeFileImpl(unitB.Path, unitB.Content, unitB.Tree)
	require.NotEmpty(t, resultB.SubRecords, "second identical file should be flagged as duplicate")

	found := false
	for _, f := range resultB.SubRecords[0].Findings {
		if f.Kind == "dry.duplicate_block" {
			found = true
		}
	}
	assert.True(t, found, "expected a duplicate_block finding")
}

func TestDRYDetectsRepeatedStringLiteral(t *testing.T) {
	content := `def build():
    a = "a distinctive repeated literal"
    b = "a distinctive repeated literal"
    c = "a distinctive repeated literal"
    return a, b, c
`
	dir := t.TempDir()
	path := writePythonFile(t, dir, "repeated.py", content)

	loader, err := source.NewLoader()
	require.NoError(t, err)
	t.Cleanup(loader.Close)

	unit, err := loader.ReadFile(path)
	require.NoError(t, err)
	defer unit.Close()

	dry := principles.NewDRY(principles.DefaultDRYConfig())
	result := dry.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.NotEmpty(t, result.SubRecords)
	found := false
	for _, f := range result.SubRecords[0].Findings {
		if f.Kind == "dry.repeated_string" {
			found = true
		}
	}
	assert.True(t, found, "expected a repeated_string finding")
}
