package analyzer

import "errors"

// The five error kinds from the framework's error handling design. Callers
// use errors.Is against these sentinels; concrete errors wrap one of them
// with %w so path/cause context survives.
var (
	// ErrFileUnreadable covers both encoding failures (neither UTF-8 nor
	// Latin-1 decodes) and filesystem-level read failures.
	ErrFileUnreadable = errors.New("analyzer: file unreadable")
	// ErrParseFailed covers tree-sitter failing to produce a tree at all,
	// or producing one whose root node reports a fatal syntax error
	// (source.ErrParse).
	ErrParseFailed = errors.New("analyzer: parse failed")
	// ErrAnalysis covers an analyzer's AnalyzeFileImpl panicking; the
	// panic is recovered and converted to an error-sentinel
	// AnalyzerResult rather than aborting the whole run.
	ErrAnalysis = errors.New("analyzer: analysis failed")
	// ErrCache covers a failure to create the cache directory or to encode
	// or write a cache entry; logged as a warning, never fatal. A corrupt
	// or unreadable entry is not reported with it: readCache treats it as
	// a miss.
	ErrCache = errors.New("analyzer: cache error")
	// ErrReport covers a report emitted in an unsupported format.
	ErrReport = errors.New("analyzer: report error")
)
