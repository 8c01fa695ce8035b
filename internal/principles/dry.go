package principles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// DRYConfig holds the duplication analyzer's thresholds, grounded on
// dry_analyzer.py's DRYAnalyzer defaults.
type DRYConfig struct {
	MinDuplicateLines   int     `yaml:"min_duplicate_lines"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MinStringLength     int     `yaml:"min_string_length"`
	MinStringOccurrences int    `yaml:"min_string_occurrences"`
}

func DefaultDRYConfig() DRYConfig {
	return DRYConfig{MinDuplicateLines: 3, SimilarityThreshold: 0.8, MinStringLength: 10, MinStringOccurrences: 3}
}

const maxDuplicateWindow = 30

type blockLocation struct {
	Path      string
	StartLine int
	EndLine   int
}

type valueLocation struct {
	Path string
	Line int
}

// DRY detects copy-pasted code blocks, repeated string literals, and
// repeated numeric constants — both within one file and across every
// file the analyzer has seen in its lifetime (the Corpus State). A DRY
// instance's maps are therefore not reset between AnalyzeFileImpl calls;
// callers that parallelize file analysis MUST route every file through
// the same DRY instance sequentially (see internal/analyzer.Runner's
// ForceSequential), since the maps are not safe for unsynchronized
// concurrent mutation and, more fundamentally, concurrent workers would
// race to observe each other's corpus contributions.
type DRY struct {
	Config DRYConfig

	mu               sync.Mutex
	codeBlocks       map[uint64][]blockLocation
	stringLiterals   map[string][]valueLocation
	numericConstants map[string][]valueLocation
}

func NewDRY(cfg DRYConfig) *DRY {
	return &DRY{
		Config:           cfg,
		codeBlocks:       map[uint64][]blockLocation{},
		stringLiterals:   map[string][]valueLocation{},
		numericConstants: map[string][]valueLocation{},
	}
}

func (d *DRY) Name() string        { return "dry" }
func (d *DRY) Description() string { return "Detects duplicated code blocks, repeated string literals, and repeated numeric constants." }

var commentPattern = regexp.MustCompile(`#.*$`)
var whitespacePattern = regexp.MustCompile(`\s+`)
var stringLiteralPattern = regexp.MustCompile(`"[^"]*"|'[^']*'`)

func normalizeLine(line string) string {
	line = commentPattern.ReplaceAllString(line, "")
	line = stringLiteralPattern.ReplaceAllString(line, `""`)
	line = whitespacePattern.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

func (d *DRY) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	cfg := d.Config
	if cfg.MinDuplicateLines <= 0 {
		cfg = DefaultDRYConfig()
	}

	lines := strings.Split(string(content), "\n")
	normalized := make([]string, len(lines))
	for i, l := range lines {
		normalized[i] = normalizeLine(l)
	}

	duplicateFindings := d.indexAndFindDuplicateBlocks(path, normalized, cfg)
	stringFindings := d.indexAndFindRepeatedStrings(path, tree, content, cfg)
	constantFindings := d.indexAndFindRepeatedConstants(path, tree, content, cfg)

	total := len(duplicateFindings) + len(stringFindings) + len(constantFindings)
	score := clamp01(1 - 0.1*float64(total))

	var subs []analyzer.SubRecord
	if total > 0 {
		all := append(append(duplicateFindings, stringFindings...), constantFindings...)
		subs = append(subs, analyzer.SubRecord{
			Name: path, Score: score, Findings: all,
			Recommendation: recommendationFor("DRY", total),
		})
	}

	return analyzer.AnalyzerResult{Path: path, AnalyzerID: d.Name(), Score: score, SubRecords: subs}
}

// indexAndFindDuplicateBlocks slides every window of min..30 lines over
// the file, fingerprints it with xxhash (in place of the original's MD5),
// records it in the shared corpus, and reports a finding for every window
// whose fingerprint now has 2+ locations anywhere in the corpus.
func (d *DRY) indexAndFindDuplicateBlocks(path string, normalized []string, cfg DRYConfig) []analyzer.Finding {
	type window struct {
		hash      uint64
		startLine int
		endLine   int
	}
	var windows []window

	n := len(normalized)
	maxLen := maxDuplicateWindow
	for size := cfg.MinDuplicateLines; size <= maxLen; size++ {
		for start := 0; start+size <= n; start++ {
			block := strings.Join(normalized[start:start+size], "\n")
			if strings.TrimSpace(block) == "" {
				continue
			}
			h := xxhash.Sum64String(block)
			windows = append(windows, window{hash: h, startLine: start + 1, endLine: start + size})
		}
	}

	d.mu.Lock()
	for _, w := range windows {
		d.codeBlocks[w.hash] = append(d.codeBlocks[w.hash], blockLocation{Path: path, StartLine: w.startLine, EndLine: w.endLine})
	}
	d.mu.Unlock()

	var findings []analyzer.Finding
	d.mu.Lock()
	for _, w := range windows {
		locs := d.codeBlocks[w.hash]
		if len(locs) < 2 {
			continue
		}
		occurrences := len(locs)
		sev := float64(occurrences-1) * 0.2
		if sev > 1 {
			sev = 1
		}
		findings = append(findings, analyzer.Finding{
			Kind: "dry.duplicate_block", Path: path, Line: w.startLine, EndLine: w.endLine,
			Details:  fmt.Sprintf("lines %d-%d duplicate code seen %d time(s) elsewhere", w.startLine, w.endLine, occurrences-1),
			Severity: clamp01(sev),
		})
	}
	d.mu.Unlock()

	return findings
}

func (d *DRY) indexAndFindRepeatedStrings(path string, tree *sitter.Tree, content []byte, cfg DRYConfig) []analyzer.Finding {
	perFile := map[string][]valueLocation{}
	for _, n := range astutil.FindAll(tree.RootNode(), "string") {
		text := stripQuotesForDRY(astutil.NodeSource(n, content))
		if len(text) < cfg.MinStringLength {
			continue
		}
		loc := astutil.NodeLocation(n, path)
		perFile[text] = append(perFile[text], valueLocation{Path: path, Line: loc.Line})
	}

	var findings []analyzer.Finding
	reported := map[string]bool{}

	d.mu.Lock()
	for text, locs := range perFile {
		d.stringLiterals[text] = append(d.stringLiterals[text], locs...)
	}
	for text, locs := range perFile {
		globalOccurrences := len(d.stringLiterals[text])
		fileOccurrences := len(locs)
		occurrences := fileOccurrences
		qualifies := fileOccurrences >= cfg.MinStringOccurrences
		if !qualifies && globalOccurrences >= cfg.MinStringOccurrences {
			qualifies = true
			occurrences = globalOccurrences
		}
		if !qualifies || reported[text] {
			continue
		}
		reported[text] = true
		sev := float64(occurrences-cfg.MinStringOccurrences+1) * 0.1
		findings = append(findings, analyzer.Finding{
			Kind: "dry.repeated_string", Path: path, Line: locs[0].Line,
			Details:  fmt.Sprintf("string literal %q repeated %d time(s)", truncate(text, 40), occurrences),
			Severity: clamp01(sev),
		})
	}
	d.mu.Unlock()

	return findings
}

func (d *DRY) indexAndFindRepeatedConstants(path string, tree *sitter.Tree, content []byte, cfg DRYConfig) []analyzer.Finding {
	excluded := map[string]bool{"0": true, "1": true, "-1": true}

	perFile := map[string][]valueLocation{}
	for _, kind := range []string{"integer", "float"} {
		for _, n := range astutil.FindAll(tree.RootNode(), kind) {
			text := astutil.NodeSource(n, content)
			if excluded[text] {
				continue
			}
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				continue
			}
			loc := astutil.NodeLocation(n, path)
			perFile[text] = append(perFile[text], valueLocation{Path: path, Line: loc.Line})
		}
	}

	var findings []analyzer.Finding
	reported := map[string]bool{}

	d.mu.Lock()
	for text, locs := range perFile {
		d.numericConstants[text] = append(d.numericConstants[text], locs...)
	}
	for text, locs := range perFile {
		globalOccurrences := len(d.numericConstants[text])
		fileOccurrences := len(locs)
		occurrences := fileOccurrences
		qualifies := fileOccurrences >= cfg.MinStringOccurrences
		if !qualifies && globalOccurrences >= cfg.MinStringOccurrences {
			qualifies = true
			occurrences = globalOccurrences
		}
		if !qualifies || reported[text] {
			continue
		}
		reported[text] = true
		sev := float64(occurrences-cfg.MinStringOccurrences+1) * 0.1
		findings = append(findings, analyzer.Finding{
			Kind: "dry.repeated_constant", Path: path, Line: locs[0].Line,
			Details:  fmt.Sprintf("numeric constant %s repeated %d time(s)", text, occurrences),
			Severity: clamp01(sev),
		})
	}
	d.mu.Unlock()

	return findings
}

func stripQuotesForDRY(s string) string {
	for _, prefix := range []string{"r", "R", "b", "B", "f", "F", "u", "U"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		n := len(quote)
		if len(s) >= 2*n && strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
			return s[n : len(s)-n]
		}
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ContributeSummary computes dry_compliance_rate = max(0, 1 -
// total_violations/(file_count*2)), mirroring dry_analyzer.py's
// directory-mode summary.
func (d *DRY) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	total := 0
	for _, r := range results {
		if r.IsError() {
			continue
		}
		for _, sub := range r.SubRecords {
			total += len(sub.Findings)
		}
	}
	fileCount := len(results)
	rate := 1.0
	if fileCount > 0 {
		rate = 1 - float64(total)/(float64(fileCount)*2)
	}
	summary["dry_compliance_rate"] = clamp01(rate)
}
