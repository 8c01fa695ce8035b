package unified

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/katichai/pyqa/internal/analyzer"
)

// GenerateReport renders a composite directory result in the requested
// format, wrapping each analyzer's own report section — mirroring
// unified_analyzer.py's _generate_text_report/_generate_html_report,
// which concatenate every enabled analyzer's generate_report output under
// its own heading.
func (u *UnifiedAnalyzer) GenerateReport(cdr CompositeDirectoryResult, format analyzer.Format) (string, error) {
	switch format {
	case analyzer.FormatJSON, "":
		data, err := json.MarshalIndent(cdr, "", "  ")
		if err != nil {
			return "", fmt.Errorf("%w: %v", analyzer.ErrReport, err)
		}
		return string(data), nil
	case analyzer.FormatText:
		return u.generateTextReport(cdr), nil
	case analyzer.FormatHTML:
		return u.generateHTMLReport(cdr), nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q", analyzer.ErrReport, format)
	}
}

func (u *UnifiedAnalyzer) generateTextReport(cdr CompositeDirectoryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Unified Code Quality Report: %s ===\n", cdr.Root)
	fmt.Fprintf(&b, "Composite score: %.2f\n\n", cdr.Score)

	for _, name := range u.order {
		an, ok := u.AnalyzerNamed(name)
		if !ok {
			continue
		}
		section, err := analyzer.GenerateReport(an, cdr.PerAnalyzer[name], analyzer.FormatText)
		if err != nil {
			continue
		}
		b.WriteString(section)
		b.WriteString("\n")
	}
	return b.String()
}

func (u *UnifiedAnalyzer) generateHTMLReport(cdr CompositeDirectoryResult) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Unified Code Quality Report</title></head><body>\n")
	fmt.Fprintf(&b, "<h1>Unified Code Quality Report: %s</h1>\n", cdr.Root)
	fmt.Fprintf(&b, "<p>Composite score: %.2f</p>\n", cdr.Score)

	for _, name := range u.order {
		an, ok := u.AnalyzerNamed(name)
		if !ok {
			continue
		}
		section, err := analyzer.GenerateReport(an, cdr.PerAnalyzer[name], analyzer.FormatHTML)
		if err != nil {
			continue
		}
		b.WriteString(section)
		b.WriteString("\n")
	}
	b.WriteString("</body></html>")
	return b.String()
}
