package principles

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
)

// ISPConfig holds the Interface Segregation Principle analyzer's
// threshold, grounded on isp_analyzer.py's max_interface_methods default.
type ISPConfig struct {
	MaxInterfaceMethods int `yaml:"max_interface_methods"`
}

func DefaultISPConfig() ISPConfig { return ISPConfig{MaxInterfaceMethods: 5} }

// ISP flags "fat" interfaces — abstractions with more methods than
// max_interface_methods — by charging every concrete class that
// implements one with a finding, since each implementer is forced to
// depend on methods it may not use.
type ISP struct {
	Config ISPConfig
}

func NewISP(cfg ISPConfig) *ISP { return &ISP{Config: cfg} }

func (i *ISP) Name() string        { return "isp" }
func (i *ISP) Description() string { return "Detects interfaces with too many methods, burdening their implementers." }

func (i *ISP) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	classes := AllClasses(tree)
	max := i.Config.MaxInterfaceMethods
	if max <= 0 {
		max = 5
	}

	type fatInterface struct {
		name        string
		methodCount int
	}
	var fat []fatInterface
	for _, cls := range classes {
		if !IsAbstraction(cls, content) {
			continue
		}
		n := len(ClassMethods(cls))
		if n > max {
			fat = append(fat, fatInterface{name: ClassName(cls, content), methodCount: n})
		}
	}

	var subs []analyzer.SubRecord
	var scores []float64

	for _, cls := range classes {
		if IsAbstraction(cls, content) {
			continue
		}
		name := ClassName(cls, content)
		bases := BaseNames(cls, content)
		baseSet := map[string]bool{}
		for _, b := range bases {
			baseSet[b] = true
		}

		var findings []analyzer.Finding
		for _, fi := range fat {
			if !baseSet[fi.name] {
				continue
			}
			findings = append(findings, newFinding(
				"isp.fat_interface", path, cls,
				fmt.Sprintf("class %q implements %q, an interface with too many methods (%d > %d)", name, fi.name, fi.methodCount, max),
				0.1,
			))
		}
		if len(findings) == 0 {
			continue
		}

		score := clamp01(1 - 0.1*float64(len(findings)))
		subs = append(subs, analyzer.SubRecord{
			Name: name, Score: score, Findings: findings,
			Recommendation: recommendationFor("ISP", len(findings)),
		})
		scores = append(scores, score)
	}

	return analyzer.AnalyzerResult{Path: path, AnalyzerID: i.Name(), Score: fileScore(scores), SubRecords: subs}
}

func (i *ISP) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	summary["isp_compliance_rate"] = complianceRate(results)
}
