package analyzer

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katichai/pyqa/internal/source"
)

// Runner wraps an Analyzer with the concerns spec.md §4.3 assigns to the
// framework rather than to individual analyzers: cached reads, recovered
// analysis calls, and parallel directory scheduling.
//
// Grounded on _examples/original_source/code_quality_analyzer/base_analyzer.py's
// BaseAnalyzer.analyze_file/analyze_directory, reimplemented with an
// errgroup worker pool (_examples/standardbeagle-lci, Sumatoshi-tech-codefang)
// in place of multiprocessing.Pool.
type Runner struct {
	An Analyzer

	UseCache bool
	CacheDir string

	// Parallel enables a goroutine pool for AnalyzeDirectory. ForceSequential
	// overrides it — DRY's corpus state is not safe to share across
	// concurrent workers, so its Runner is always constructed with
	// ForceSequential set regardless of the caller's Parallel preference
	// (spec.md §9 design choice (a); see DESIGN.md).
	Parallel        bool
	ForceSequential bool

	// Excludes holds doublestar glob patterns opting files out of
	// AnalyzeDirectory entirely (see source.Enumerate).
	Excludes []string

	Logger *zap.Logger
}

// NewRunner builds a Runner with a non-nil logger, defaulting to zap's
// no-op logger when log is nil so callers never need a guard.
func NewRunner(an Analyzer, useCache bool, cacheDir string, parallel bool, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{An: an, UseCache: useCache, CacheDir: cacheDir, Parallel: parallel, Logger: log}
}

// AnalyzeFile runs the Runner's Analyzer over one file, consulting and
// populating the cache when enabled.
func (r *Runner) AnalyzeFile(path string) AnalyzerResult {
	name := r.An.Name()

	if r.UseCache {
		if cached, ok := readCache(r.CacheDir, name, path); ok {
			return cached
		}
	}

	loader, err := source.NewLoader()
	if err != nil {
		r.Logger.Warn("analyzer: loader setup failed", zap.Error(err))
		return ErrorResult(path, name, fmt.Errorf("%w: %v", ErrParseFailed, err))
	}
	defer loader.Close()

	unit, err := loader.ReadFile(path)
	if err != nil {
		sentinel := ErrFileUnreadable
		if errors.Is(err, source.ErrParse) {
			sentinel = ErrParseFailed
		}
		r.Logger.Warn("analyzer: file unreadable", zap.String("path", path), zap.Error(err))
		return ErrorResult(path, name, fmt.Errorf("%w: %v", sentinel, err))
	}
	defer unit.Close()

	result := r.analyzeRecovered(unit)

	if r.UseCache && !result.IsError() {
		if err := writeCache(r.CacheDir, name, path, result); err != nil {
			r.Logger.Warn("analyzer: cache write failed", zap.Error(err))
		}
	}

	return result
}

// analyzeRecovered calls the wrapped Analyzer, converting a panic into an
// ErrAnalysis result instead of bringing down the whole run — an
// analyzer bug on one malformed file must not abort analysis of the rest
// of the corpus.
func (r *Runner) analyzeRecovered(unit *source.Unit) (result AnalyzerResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ErrorResult(unit.Path, r.An.Name(), fmt.Errorf("%w: %v", ErrAnalysis, rec))
		}
	}()
	return r.An.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)
}

// AnalyzeDirectory runs the Runner's Analyzer over every Python file under
// root, in parallel when Parallel is set and ForceSequential is not,
// then folds the results through the Analyzer's ContributeSummary hook.
func (r *Runner) AnalyzeDirectory(root string) (DirectoryResult, error) {
	paths, err := source.Enumerate(root, r.Excludes)
	if err != nil {
		return DirectoryResult{}, err
	}

	results := make([]AnalyzerResult, len(paths))

	if r.Parallel && !r.ForceSequential {
		g := new(errgroup.Group)
		g.SetLimit(runtime.NumCPU())
		for i, p := range paths {
			i, p := i, p
			g.Go(func() error {
				results[i] = r.AnalyzeFile(p)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, p := range paths {
			results[i] = r.AnalyzeFile(p)
		}
	}

	var errorCount, analyzedCount int
	findingsByKind := map[string]int{}
	for _, res := range results {
		if res.IsError() {
			errorCount++
			continue
		}
		analyzedCount++
		for _, sub := range res.SubRecords {
			for _, f := range sub.Findings {
				findingsByKind[f.Kind]++
			}
		}
	}

	summary := map[string]interface{}{
		"file_count":       len(paths),
		"error_count":      errorCount,
		"analyzed_count":   analyzedCount,
		"findings_by_kind": findingsByKind,
	}
	r.An.ContributeSummary(summary, results)

	return DirectoryResult{Root: root, Results: results, Summary: summary}, nil
}
