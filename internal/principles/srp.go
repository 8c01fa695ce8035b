package principles

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// SRPConfig holds the Single Responsibility Principle analyzer's
// thresholds, grounded on srp_analyzer.py's SRPAnalyzer defaults.
type SRPConfig struct {
	MaxResponsibilities int     `yaml:"max_responsibilities"`
	CohesionThreshold   float64 `yaml:"cohesion_threshold"`
}

// DefaultSRPConfig mirrors the original's max_responsibilities=1,
// cohesion_threshold=0.5.
func DefaultSRPConfig() SRPConfig {
	return SRPConfig{MaxResponsibilities: 1, CohesionThreshold: 0.5}
}

// SRP detects classes mixing more than one responsibility domain, and
// classes whose methods share little in common (low cohesion).
type SRP struct {
	Config SRPConfig
}

func NewSRP(cfg SRPConfig) *SRP { return &SRP{Config: cfg} }

func (s *SRP) Name() string { return "srp" }

func (s *SRP) Description() string {
	return "Detects classes that carry more than one responsibility, and classes whose methods lack cohesion."
}

func (s *SRP) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	var subs []analyzer.SubRecord
	var scores []float64

	for _, cls := range AllClasses(tree) {
		sub := s.analyzeClass(path, cls, content)
		subs = append(subs, sub)
		scores = append(scores, sub.Score)
	}

	return analyzer.AnalyzerResult{
		Path:       path,
		AnalyzerID: s.Name(),
		Score:      fileScore(scores),
		SubRecords: subs,
	}
}

func (s *SRP) analyzeClass(path string, cls *sitter.Node, content []byte) analyzer.SubRecord {
	name := ClassName(cls, content)
	methods := ClassMethods(cls)

	textParts := []string{name, astutil.Docstring(astutil.BodyOf(cls), content)}
	for _, m := range methods {
		textParts = append(textParts, MethodName(m, content))
		textParts = append(textParts, astutil.Docstring(astutil.BodyOf(m), content))
		textParts = append(textParts, astutil.NodeSource(m, content))
	}
	responsibilities := DetectResponsibilities(combinedLowerText(textParts...))

	cohesion := methodCohesion(methods, content)

	maxResp := s.Config.MaxResponsibilities
	if maxResp <= 0 {
		maxResp = 1
	}
	violations := len(responsibilities) - maxResp
	if violations < 0 {
		violations = 0
	}
	score := clamp01(1 - float64(violations)*0.2)

	threshold := s.Config.CohesionThreshold
	if threshold <= 0 {
		threshold = 0.5
	}
	if cohesion < threshold {
		score *= cohesion / threshold
	}

	var findings []analyzer.Finding
	if violations > 0 {
		findings = append(findings, newFinding(
			"srp.mixed_responsibilities", path, cls,
			fmt.Sprintf("class %q mixes %d responsibilities: %s", name, len(responsibilities), strings.Join(responsibilities, ", ")),
			float64(violations)*0.2,
		))
	}
	if cohesion < threshold {
		findings = append(findings, newFinding(
			"srp.low_cohesion", path, cls,
			fmt.Sprintf("class %q has low method cohesion (%.2f < %.2f)", name, cohesion, threshold),
			1-cohesion,
		))
	}

	return analyzer.SubRecord{
		Name:           name,
		Score:          clamp01(score),
		Findings:       findings,
		Recommendation: recommendationFor("SRP", len(findings)),
		Attributes: map[string]string{
			"responsibilities": strings.Join(responsibilities, ","),
		},
	}
}

var identifierTokenPattern = astutil.Identifiers // alias kept for readability at call sites

// methodCohesion computes the mean pairwise Jaccard similarity of
// identifier-token sets across methods, mirroring
// srp_analyzer.py's _calculate_cohesion (1.0 for zero or one method).
func methodCohesion(methods []*sitter.Node, content []byte) float64 {
	if len(methods) <= 1 {
		return 1.0
	}

	sets := make([]map[string]struct{}, len(methods))
	for i, m := range methods {
		tokens := identifierTokenPattern(m, content)
		set := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			set[t] = struct{}{}
		}
		sets[i] = set
	}

	var total float64
	var pairs int
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			total += jaccard(sets[i], sets[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 1.0
	}
	return total / float64(pairs)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// ContributeSummary adds srp_compliance_rate, the directory-mode fallback
// key the Unified Analyzer reads when an overall_srp_score is absent
// (unified_analyzer.py already carries this fallback for srp; see
// internal/unified for the decision extending it to all seven analyzers).
func (s *SRP) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	summary["srp_compliance_rate"] = complianceRate(results)
}
