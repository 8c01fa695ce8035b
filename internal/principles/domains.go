// Package principles implements the seven principle analyzers (SRP, OCP,
// LSP, ISP, DIP, KISS, DRY) against the internal/analyzer.Analyzer
// contract, operating over tree-sitter-python parse trees via
// internal/astutil.
//
// Grounded line-for-line on
// _examples/original_source/code_quality_analyzer/analyzers/*.py.
package principles

import "regexp"

// ResponsibilityDomains is SRP's fixed catalogue of responsibility
// keywords, carried over verbatim from srp_analyzer.py's
// RESPONSIBILITY_DOMAINS.
var ResponsibilityDomains = map[string][]string{
	"data_access":    {"database", "query", "repository", "store", "retrieve", "save", "load", "persist", "fetch"},
	"ui":             {"display", "show", "render", "view", "ui", "interface", "screen", "layout"},
	"validation":     {"validate", "check", "verify", "ensure", "assert", "constraint"},
	"calculation":    {"calculate", "compute", "process", "algorithm", "formula"},
	"io":             {"file", "read", "write", "stream", "input", "output", "io", "print"},
	"network":        {"http", "request", "response", "api", "endpoint", "url", "network", "fetch"},
	"authentication": {"auth", "login", "permission", "role", "access", "credential"},
	"error_handling": {"exception", "error", "handle", "try", "catch", "finally", "raise"},
	"configuration":  {"config", "setting", "property", "environment", "parameter"},
	"logging":        {"log", "trace", "debug", "info", "warn", "error", "fatal"},
}

// responsibilityOrder fixes iteration order over ResponsibilityDomains so
// detected-responsibility lists are deterministic (Go map iteration is
// randomized; the original's dict preserves Python 3.7+ insertion order).
var responsibilityOrder = []string{
	"data_access", "ui", "validation", "calculation", "io", "network",
	"authentication", "error_handling", "configuration", "logging",
}

var wordBoundaryCache = map[string]*regexp.Regexp{}

// wordBoundaryRegexp returns (and caches) the \bkeyword\b pattern used for
// whole-word responsibility-keyword matching.
func wordBoundaryRegexp(keyword string) *regexp.Regexp {
	if re, ok := wordBoundaryCache[keyword]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	wordBoundaryCache[keyword] = re
	return re
}

// DetectResponsibilities returns every responsibility domain whose keyword
// list has at least one whole-word match in text (already lowercased by
// the caller).
func DetectResponsibilities(text string) []string {
	var found []string
	for _, domain := range responsibilityOrder {
		for _, kw := range ResponsibilityDomains[domain] {
			if wordBoundaryRegexp(kw).MatchString(text) {
				found = append(found, domain)
				break
			}
		}
	}
	return found
}
