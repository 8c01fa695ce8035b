// Package unified implements the Unified Analyzer: it drives the seven
// principle analyzers in a fixed order, folds their file- and
// directory-level results into one composite score, and renders the
// combined report.
//
// Grounded on
// _examples/original_source/code_quality_analyzer/unified_analyzer.py.
package unified

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/principles"
	"github.com/katichai/pyqa/internal/pyconfig"
)

// DefaultOrder is the canonical analyzer order, matching
// analyzers/__init__.py's export order and unified_analyzer.py's default
// enabled_analyzers list.
var DefaultOrder = []string{"srp", "ocp", "lsp", "isp", "dip", "kiss", "dry"}

// CompositeResult is one file's combined outcome across every enabled
// analyzer.
type CompositeResult struct {
	Path        string                             `json:"path"`
	Score       float64                            `json:"score"`
	PerAnalyzer map[string]analyzer.AnalyzerResult `json:"per_analyzer"`
}

// CompositeDirectoryResult is a directory run's combined outcome.
type CompositeDirectoryResult struct {
	Root        string                             `json:"root"`
	Score       float64                            `json:"score"`
	PerAnalyzer map[string]analyzer.DirectoryResult `json:"per_analyzer"`
}

// UnifiedAnalyzer owns one Runner per enabled principle analyzer and
// composes their results.
type UnifiedAnalyzer struct {
	order      []string
	analyzers  map[string]analyzer.Analyzer
	runners    map[string]*analyzer.Runner
	dryAnalyzer *principles.DRY
}

// New constructs a UnifiedAnalyzer from cfg's enabled_analyzers list (or
// DefaultOrder when empty), building each analyzer from its own
// sub-config section and a Runner honoring cfg's cache/parallel settings.
//
// DRY's Runner is always constructed with ForceSequential set: its
// in-memory corpus state is not safe to share across concurrent directory
// workers (spec.md §9 design choice (a); see DESIGN.md), independent of
// cfg.Analysis.Parallel.
func New(cfg *pyconfig.Config, log *zap.Logger) (*UnifiedAnalyzer, error) {
	order := cfg.EnabledAnalyzers
	if len(order) == 0 {
		order = DefaultOrder
	}

	u := &UnifiedAnalyzer{
		order:     order,
		analyzers: map[string]analyzer.Analyzer{},
		runners:   map[string]*analyzer.Runner{},
	}

	for _, name := range order {
		var an analyzer.Analyzer
		forceSequential := false

		switch name {
		case "srp":
			an = principles.NewSRP(cfg.SRP)
		case "ocp":
			an = principles.NewOCP()
		case "lsp":
			an = principles.NewLSP()
		case "isp":
			an = principles.NewISP(cfg.ISP)
		case "dip":
			an = principles.NewDIP()
		case "kiss":
			an = principles.NewKISS(cfg.KISS)
		case "dry":
			dry := principles.NewDRY(cfg.DRY)
			u.dryAnalyzer = dry
			an = dry
			forceSequential = true
		default:
			return nil, fmt.Errorf("unified: unknown analyzer %q in enabled_analyzers", name)
		}

		runner := analyzer.NewRunner(an, cfg.UseCache, cfg.CacheDir, cfg.Analysis.Parallel, log)
		runner.ForceSequential = forceSequential
		runner.Excludes = cfg.ExcludePatterns
		u.analyzers[name] = an
		u.runners[name] = runner
	}

	return u, nil
}

// AnalyzeFile runs every enabled analyzer over path and composes the
// result, mirroring unified_analyzer.py's single-file _calculate_overall_score:
// the mean of each analyzer's own Score.
func (u *UnifiedAnalyzer) AnalyzeFile(path string) CompositeResult {
	per := make(map[string]analyzer.AnalyzerResult, len(u.order))
	var sum float64
	var n int
	for _, name := range u.order {
		res := u.runners[name].AnalyzeFile(path)
		per[name] = res
		if !res.IsError() {
			sum += res.Score
			n++
		}
	}
	// spec.md §8 Property 7: an empty composite (every analyzer errored)
	// scores 0, not 1 — a perfect score is never awarded on the absence of
	// signal.
	var score float64
	if n > 0 {
		score = sum / float64(n)
	}
	return CompositeResult{Path: path, Score: score, PerAnalyzer: per}
}

// AnalyzeDirectory runs every enabled analyzer's directory mode over root
// and composes one score from each analyzer's summary.
//
// unified_analyzer.py reads each analyzer's overall score from a
// directory-mode summary via an elif-priority chain that only falls back
// to "<name>_compliance_rate" for srp/kiss/dry — ocp/lsp/isp/dip have no
// "overall_<name>_score" summary key in directory mode at all, so they
// silently drop out of the original's composite. This port's analyzers
// all populate "<name>_compliance_rate" (see each ContributeSummary), and
// this function reads that key uniformly for all seven — a deliberate,
// documented extension of the fallback (see DESIGN.md), not an
// accidental behavior change.
func (u *UnifiedAnalyzer) AnalyzeDirectory(root string) (CompositeDirectoryResult, error) {
	per := make(map[string]analyzer.DirectoryResult, len(u.order))
	var sum float64
	var n int

	for _, name := range u.order {
		dr, err := u.runners[name].AnalyzeDirectory(root)
		if err != nil {
			return CompositeDirectoryResult{}, fmt.Errorf("unified: analyzing %s with %s: %w", root, name, err)
		}
		per[name] = dr

		if rate, ok := dr.Summary[name+"_compliance_rate"].(float64); ok {
			sum += rate
			n++
		}
	}

	// spec.md §8 Property 7: an empty composite (every analyzer errored)
	// scores 0, not 1.
	var score float64
	if n > 0 {
		score = sum / float64(n)
	}
	return CompositeDirectoryResult{Root: root, Score: score, PerAnalyzer: per}, nil
}

// Order returns a copy of the configured analyzer order.
func (u *UnifiedAnalyzer) Order() []string {
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}

// AnalyzerNamed returns the underlying analyzer.Analyzer for name, for
// report generation.
func (u *UnifiedAnalyzer) AnalyzerNamed(name string) (analyzer.Analyzer, bool) {
	a, ok := u.analyzers[name]
	return a, ok
}
