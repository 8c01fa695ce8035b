package analyzer

import sitter "github.com/tree-sitter/go-tree-sitter"

// Analyzer is the one contract every principle analyzer implements: a
// human name, a description, the per-file hook the Runner calls, and the
// directory summary hook. Thresholds are not part of the contract; each
// analyzer carries its own typed config struct.
type Analyzer interface {
	// Name returns the analyzer's short identifier (e.g. "srp"), used as
	// the cache-key prefix, the config sub-key, and the report section
	// title.
	Name() string

	// Description returns a one-line human-readable summary.
	Description() string

	// AnalyzeFileImpl performs the analyzer-specific inspection of one
	// already-parsed file. It must not touch the filesystem or cache —
	// the Runner owns those concerns.
	AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) AnalyzerResult

	// ContributeSummary folds this analyzer's per-file results into a
	// shared directory-level summary map, adding at minimum a
	// "<name>_compliance_rate" entry (spec.md §4.5 fallback contract).
	ContributeSummary(summary map[string]interface{}, results []AnalyzerResult)
}

// TextReporter is implemented by analyzers that contribute a section to a
// text-format report. Optional: GenerateReport always writes its generic
// per-finding listing and appends this hook's lines after it.
type TextReporter interface {
	ContributeTextReport(lines []string, results []AnalyzerResult, summary map[string]interface{}) []string
}

// HTMLReporter is implemented by analyzers that contribute HTML summary
// and per-file sections.
type HTMLReporter interface {
	ContributeHTMLSummary(html []string, summary map[string]interface{}) []string
	ContributeHTMLReport(html []string, results []AnalyzerResult) []string
}
