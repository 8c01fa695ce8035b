package analyzer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(sourcePath, []byte("x = 1\n"), 0o644))

	cacheDir := filepath.Join(dir, "cache")
	result := AnalyzerResult{Path: sourcePath, AnalyzerID: "srp", Score: 0.75}

	require.NoError(t, writeCache(cacheDir, "srp", sourcePath, result))

	got, ok := readCache(cacheDir, "srp", sourcePath)
	require.True(t, ok)
	assert.Equal(t, 0.75, got.Score)
	assert.True(t, got.FromCache)
}

func TestCacheInvalidatedBySourceModification(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(sourcePath, []byte("x = 1\n"), 0o644))

	cacheDir := filepath.Join(dir, "cache")
	require.NoError(t, writeCache(cacheDir, "srp", sourcePath, AnalyzerResult{Score: 1.0}))

	// Touch the source file well after the cache entry so the cache is
	// strictly older than the (modified) source.
	future := time.Now().Add(1 * time.Hour)
	require.NoError(t, os.Chtimes(sourcePath, future, future))

	_, ok := readCache(cacheDir, "srp", sourcePath)
	assert.False(t, ok, "cache entry older than a modified source file must miss")
}

func TestCacheMissWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(sourcePath, []byte("x = 1\n"), 0o644))

	_, ok := readCache(filepath.Join(dir, "cache"), "srp", sourcePath)
	assert.False(t, ok)
}
