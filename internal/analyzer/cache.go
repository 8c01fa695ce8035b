package analyzer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// cacheEntry is the gob-serialized payload written to disk. The original
// Python implementation pickles the AnalyzerResult directly and relies on
// the cache *file's* mtime as the freshness marker; the Go port does the
// same rather than embedding a timestamp field, so a cache file copied or
// touched by another tool behaves identically to the original.
type cacheEntry struct {
	Result AnalyzerResult
}

// cachePath returns the on-disk path for analyzerName's cached result for
// sourcePath:
// "{cache_dir}/{analyzer_name}_{abspath with os.sep replaced by _}.cache",
// with the leading "_" from the root separator dropped. The path as given
// is used when it cannot be made absolute.
func cachePath(cacheDir, analyzerName, sourcePath string) string {
	rel := sourcePath
	if abs, err := filepath.Abs(sourcePath); err == nil {
		rel = abs
	}
	key := strings.ReplaceAll(rel, string(filepath.Separator), "_")
	key = strings.TrimPrefix(key, "_")
	return filepath.Join(cacheDir, fmt.Sprintf("%s_%s.cache", analyzerName, key))
}

// readCache loads a cached AnalyzerResult if present and still valid.
// Validity is intentionally the original's non-strict comparison —
// source_mtime <= cache_mtime — not a strict less-than. A source file
// saved in the same filesystem-timestamp tick as its cache entry is
// treated as still cached; this is carried over unchanged from the
// original implementation (see DESIGN.md) rather than "fixed", since
// spec.md requires recording rather than silently altering this behavior.
func readCache(cacheDir, analyzerName, sourcePath string) (AnalyzerResult, bool) {
	path := cachePath(cacheDir, analyzerName, sourcePath)

	cacheInfo, err := os.Stat(path)
	if err != nil {
		return AnalyzerResult{}, false
	}
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return AnalyzerResult{}, false
	}
	if sourceInfo.ModTime().After(cacheInfo.ModTime()) {
		return AnalyzerResult{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AnalyzerResult{}, false
	}
	var entry cacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return AnalyzerResult{}, false
	}
	entry.Result.FromCache = true
	return entry.Result, true
}

// writeCache persists result for sourcePath under cacheDir. Failures are
// non-fatal: the caller logs and proceeds, since a missing cache entry
// only costs a future re-analysis, never correctness.
func writeCache(cacheDir, analyzerName, sourcePath string, result AnalyzerResult) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating cache dir: %v", ErrCache, err)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cacheEntry{Result: result}); err != nil {
		return fmt.Errorf("%w: encoding: %v", ErrCache, err)
	}
	path := cachePath(cacheDir, analyzerName, sourcePath)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrCache, path, err)
	}
	return nil
}
