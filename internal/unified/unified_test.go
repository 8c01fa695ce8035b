package unified_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/pyconfig"
	"github.com/katichai/pyqa/internal/unified"
)

func newUnified(t *testing.T, cfg *pyconfig.Config) *unified.UnifiedAnalyzer {
	t.Helper()
	ua, err := unified.New(cfg, nil)
	require.NoError(t, err)
	return ua
}

func TestNewRejectsUnknownAnalyzerName(t *testing.T) {
	cfg := pyconfig.DefaultConfig()
	cfg.EnabledAnalyzers = []string{"srp", "nonsense"}
	_, err := unified.New(cfg, nil)
	assert.Error(t, err)
}

func TestOrderDefaultsToCanonicalSevenWhenEmpty(t *testing.T) {
	cfg := pyconfig.DefaultConfig()
	cfg.EnabledAnalyzers = nil
	ua := newUnified(t, cfg)
	assert.Equal(t, unified.DefaultOrder, ua.Order())
}

func TestAnalyzeFileComposesEveryEnabledAnalyzer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("def add(a, b):\n    return a + b\n"), 0o644))

	cfg := pyconfig.DefaultConfig()
	cfg.UseCache = false
	ua := newUnified(t, cfg)

	result := ua.AnalyzeFile(path)
	assert.Equal(t, path, result.Path)
	assert.Len(t, result.PerAnalyzer, len(unified.DefaultOrder))
	for _, name := range unified.DefaultOrder {
		_, ok := result.PerAnalyzer[name]
		assert.True(t, ok, "expected a per-analyzer result for %q", name)
	}
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
}

func TestAnalyzeDirectoryComposesAcrossAllSevenComplianceRates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("def add(a, b):\n    return a + b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.py"), []byte("def sub(a, b):\n    return a - b\n"), 0o644))

	cfg := pyconfig.DefaultConfig()
	cfg.UseCache = false
	cfg.Analysis.Parallel = false
	ua := newUnified(t, cfg)

	result, err := ua.AnalyzeDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, result.Root)
	assert.Len(t, result.PerAnalyzer, len(unified.DefaultOrder))

	for _, name := range unified.DefaultOrder {
		dr, ok := result.PerAnalyzer[name]
		require.True(t, ok)
		_, hasRate := dr.Summary[name+"_compliance_rate"]
		assert.True(t, hasRate, "expected %s_compliance_rate in directory summary", name)
	}
}

func TestAnalyzeFileScoresZeroWhenEveryAnalyzerErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.py")
	// An unterminated string literal: tree-sitter-python cannot complete
	// the token and marks the parse tree's root as erroneous, so every
	// analyzer's Runner should report an error sentinel for this file.
	require.NoError(t, os.WriteFile(path, []byte("x = \"unterminated\n"), 0o644))

	cfg := pyconfig.DefaultConfig()
	cfg.UseCache = false
	ua := newUnified(t, cfg)

	result := ua.AnalyzeFile(path)
	for name, res := range result.PerAnalyzer {
		assert.True(t, res.IsError(), "expected %s to report a parse error", name)
	}
	assert.Equal(t, 0.0, result.Score, "an all-error composite must score 0, not a perfect 1.0")
}

func TestAnalyzerNamedReturnsConfiguredAnalyzer(t *testing.T) {
	cfg := pyconfig.DefaultConfig()
	ua := newUnified(t, cfg)

	an, ok := ua.AnalyzerNamed("dry")
	require.True(t, ok)
	assert.Equal(t, "dry", an.Name())

	_, ok = ua.AnalyzerNamed("not_an_analyzer")
	assert.False(t, ok)
}
