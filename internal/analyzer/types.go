// Package analyzer defines the analyzer framework: the contract every
// principle analyzer implements, the data shapes those analyzers produce,
// and the orchestration (caching, parallel directory runs, report
// rendering) shared by all of them.
package analyzer

import "fmt"

// Finding is a single reported issue at one location. Findings are
// immutable once produced.
type Finding struct {
	Kind     string  `json:"kind"`
	Path     string  `json:"path"`
	Line     int     `json:"line"`
	EndLine  int     `json:"end_line,omitempty"`
	Details  string  `json:"details"`
	Severity float64 `json:"severity"`
}

// SubRecord is a per-class, per-method, or per-duplicate-block entry inside
// an AnalyzerResult. Name identifies the entity (class or method name);
// Score is in [0,1]; Recommendation is remediation text generated from the
// Findings, empty when there are none.
type SubRecord struct {
	Name           string            `json:"name"`
	Score          float64           `json:"score"`
	Findings       []Finding         `json:"findings,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// AnalyzerResult is produced by one analyzer for one file.
type AnalyzerResult struct {
	Path        string      `json:"path"`
	AnalyzerID  string      `json:"analyzer"`
	Score       float64     `json:"score"`
	SubRecords  []SubRecord `json:"sub_records,omitempty"`
	Error       string      `json:"error,omitempty"`
	FromCache   bool        `json:"-"`
}

// IsError reports whether this result is an error sentinel.
func (r AnalyzerResult) IsError() bool { return r.Error != "" }

// ErrorResult builds an error-sentinel AnalyzerResult.
func ErrorResult(path, analyzerID string, err error) AnalyzerResult {
	return AnalyzerResult{Path: path, AnalyzerID: analyzerID, Error: err.Error()}
}

// DirectoryResult composes the AnalyzerResults from running one analyzer
// over every file under a root, plus a summary map contributed by the
// framework and by the analyzer's own ContributeSummary hook.
type DirectoryResult struct {
	Root    string                 `json:"root"`
	Results []AnalyzerResult       `json:"results"`
	Summary map[string]interface{} `json:"summary"`
}

// String satisfies fmt.Stringer for debugging/log output.
func (f Finding) String() string {
	return fmt.Sprintf("%s@%s:%d (sev=%.2f) %s", f.Kind, f.Path, f.Line, f.Severity, f.Details)
}
