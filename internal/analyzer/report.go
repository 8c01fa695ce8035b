package analyzer

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// Format identifies a report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// GenerateReport renders dr in the requested format. Text and HTML output
// always include a generic per-file, per-finding listing; when an
// implements TextReporter/HTMLReporter, its hook sections are added to
// that listing.
//
// Grounded on base_analyzer.py's generate_report dispatch and its exact
// HTML CSS classes (.good/.warning/.bad thresholds at 0.8/0.6, .summary,
// .file, .file-header, .file-path, .file-score, .violation, .recommendation).
func GenerateReport(an Analyzer, dr DirectoryResult, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return generateTextReport(an, dr), nil
	case FormatJSON:
		data, err := json.MarshalIndent(dr, "", "  ")
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReport, err)
		}
		return string(data), nil
	case FormatHTML:
		return generateHTMLReport(an, dr), nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q", ErrReport, format)
	}
}

func scoreClass(score float64) string {
	switch {
	case score >= 0.8:
		return "good"
	case score >= 0.6:
		return "warning"
	default:
		return "bad"
	}
}

func generateTextReport(an Analyzer, dr DirectoryResult) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("=== %s Analysis Report ===", strings.ToUpper(an.Name())))
	lines = append(lines, an.Description())
	lines = append(lines, fmt.Sprintf("Files analyzed: %d", len(dr.Results)))
	lines = append(lines, "")

	for _, res := range dr.Results {
		if res.IsError() {
			lines = append(lines, fmt.Sprintf("%s: ERROR: %s", res.Path, res.Error))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: score=%.2f", res.Path, res.Score))
		for _, sub := range res.SubRecords {
			lines = append(lines, fmt.Sprintf("  %s: score=%.2f", sub.Name, sub.Score))
			for _, f := range sub.Findings {
				lines = append(lines, fmt.Sprintf("    - line %d: %s", f.Line, f.Details))
			}
			if sub.Recommendation != "" {
				lines = append(lines, fmt.Sprintf("    recommendation: %s", sub.Recommendation))
			}
		}
	}

	if reporter, ok := an.(TextReporter); ok {
		lines = reporter.ContributeTextReport(lines, dr.Results, dr.Summary)
	}

	return strings.Join(lines, "\n") + "\n"
}

const htmlStyle = `<style>
.summary { margin-bottom: 20px; }
.file { margin-bottom: 15px; border: 1px solid #ccc; padding: 10px; }
.file-header { display: flex; justify-content: space-between; }
.file-path { font-weight: bold; }
.file-score { font-weight: bold; }
.violation { margin-left: 20px; color: #a33; }
.recommendation { margin-left: 20px; font-style: italic; }
.good { color: green; }
.warning { color: orange; }
.bad { color: red; }
</style>`

func generateHTMLReport(an Analyzer, dr DirectoryResult) string {
	var lines []string
	lines = append(lines, "<html><head>", htmlStyle, "</head><body>")
	lines = append(lines, fmt.Sprintf("<h1>%s Analysis Report</h1>", html.EscapeString(strings.ToUpper(an.Name()))))
	lines = append(lines, `<div class="summary">`)
	lines = append(lines, fmt.Sprintf("<p>Files analyzed: %d</p>", len(dr.Results)))

	if reporter, ok := an.(HTMLReporter); ok {
		lines = reporter.ContributeHTMLSummary(lines, dr.Summary)
	}
	lines = append(lines, "</div>")

	for _, res := range dr.Results {
		lines = append(lines, `<div class="file">`)
		if res.IsError() {
			lines = append(lines, fmt.Sprintf(`<div class="file-header"><span class="file-path">%s</span><span class="bad">ERROR</span></div>`, html.EscapeString(res.Path)))
			lines = append(lines, fmt.Sprintf("<p>%s</p>", html.EscapeString(res.Error)))
			lines = append(lines, "</div>")
			continue
		}
		cls := scoreClass(res.Score)
		lines = append(lines, fmt.Sprintf(
			`<div class="file-header"><span class="file-path">%s</span><span class="file-score %s">%.2f</span></div>`,
			html.EscapeString(res.Path), cls, res.Score))
		for _, sub := range res.SubRecords {
			lines = append(lines, fmt.Sprintf(`<div class="%s">%s: %.2f</div>`, scoreClass(sub.Score), html.EscapeString(sub.Name), sub.Score))
			for _, f := range sub.Findings {
				lines = append(lines, fmt.Sprintf(`<div class="violation">Line %d: %s</div>`, f.Line, html.EscapeString(f.Details)))
			}
			if sub.Recommendation != "" {
				lines = append(lines, fmt.Sprintf(`<div class="recommendation">%s</div>`, html.EscapeString(sub.Recommendation)))
			}
		}
		lines = append(lines, "</div>")
	}

	if reporter, ok := an.(HTMLReporter); ok {
		lines = reporter.ContributeHTMLReport(lines, dr.Results)
	}

	lines = append(lines, "</body></html>")
	return strings.Join(lines, "\n")
}
