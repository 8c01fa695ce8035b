package principles

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// methodSignature captures the shape of one method used for Liskov
// substitution comparison: its declared parameter count, its return-type
// annotation ("unknown" when absent), and the set of exception type names
// it raises directly.
type methodSignature struct {
	ParamCount int
	ReturnType string
	Exceptions map[string]bool
}

// LSP detects overriding methods whose parameter count, return type, or
// raised-exception set diverges from the base method they override —
// substitutability breaks.
type LSP struct{}

func NewLSP() *LSP { return &LSP{} }

func (l *LSP) Name() string        { return "lsp" }
func (l *LSP) Description() string { return "Detects Liskov substitution violations in method overrides." }

func (l *LSP) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	classes := AllClasses(tree)
	hierarchy := map[string][]string{}
	signatures := map[string]map[string]methodSignature{}

	for _, cls := range classes {
		name := ClassName(cls, content)
		hierarchy[name] = BaseNames(cls, content)
		sigs := map[string]methodSignature{}
		for _, m := range ClassMethods(cls) {
			mName := MethodName(m, content)
			if IsDunder(mName) {
				continue
			}
			sigs[mName] = buildSignature(m, content)
		}
		signatures[name] = sigs
	}

	var subs []analyzer.SubRecord
	var scores []float64

	for _, cls := range classes {
		name := ClassName(cls, content)
		var findings []analyzer.Finding

		for _, base := range hierarchy[name] {
			baseSigs, ok := signatures[base]
			if !ok {
				continue
			}
			for mName, derived := range signatures[name] {
				baseSig, ok := baseSigs[mName]
				if !ok {
					continue
				}
				findings = append(findings, compareSignatures(path, cls, name, base, mName, baseSig, derived)...)
			}
		}

		score := clamp01(1 - 0.1*float64(len(findings)))
		subs = append(subs, analyzer.SubRecord{
			Name: name, Score: score, Findings: findings,
			Recommendation: recommendationFor("LSP", len(findings)),
		})
		scores = append(scores, score)
	}

	return analyzer.AnalyzerResult{Path: path, AnalyzerID: l.Name(), Score: fileScore(scores), SubRecords: subs}
}

func compareSignatures(path string, cls *sitter.Node, className, baseName, methodName string, base, derived methodSignature) []analyzer.Finding {
	var findings []analyzer.Finding
	if derived.ParamCount != base.ParamCount {
		findings = append(findings, newFinding(
			"lsp.param_count_mismatch", path, cls,
			fmt.Sprintf("%s.%s overrides %s.%s with a different parameter count (%d vs %d)", className, methodName, baseName, methodName, derived.ParamCount, base.ParamCount),
			0.1,
		))
	}
	if derived.ReturnType != "unknown" && base.ReturnType != "unknown" && derived.ReturnType != base.ReturnType {
		findings = append(findings, newFinding(
			"lsp.return_type_mismatch", path, cls,
			fmt.Sprintf("%s.%s overrides %s.%s with a different return type (%s vs %s)", className, methodName, baseName, methodName, derived.ReturnType, base.ReturnType),
			0.1,
		))
	}
	for exc := range derived.Exceptions {
		if !base.Exceptions[exc] {
			findings = append(findings, newFinding(
				"lsp.new_exception", path, cls,
				fmt.Sprintf("%s.%s raises %s, not raised by %s.%s", className, methodName, exc, baseName, methodName),
				0.1,
			))
		}
	}
	return findings
}

func buildSignature(method *sitter.Node, content []byte) methodSignature {
	params := method.ChildByFieldName("parameters")
	count := 0
	if params != nil {
		n := params.ChildCount()
		for i := uint(0); i < n; i++ {
			child := params.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "identifier", "typed_parameter", "default_parameter", "typed_default_parameter":
				if astutil.NodeSource(child, content) == "self" {
					continue
				}
				count++
			}
		}
	}

	returnType := "unknown"
	if rt := method.ChildByFieldName("return_type"); rt != nil {
		if name, ok := astutil.NameOf(rt, content); ok {
			returnType = name
		} else {
			returnType = astutil.NodeSource(rt, content)
		}
	}

	exceptions := map[string]bool{}
	body := astutil.BodyOf(method)
	for _, raiseStmt := range astutil.FindAll(body, "raise_statement") {
		if raiseStmt.ChildCount() < 2 {
			continue
		}
		target := raiseStmt.Child(1)
		name, ok := astutil.NameOf(target, content)
		if !ok {
			continue
		}
		exceptions[name] = true
	}

	return methodSignature{ParamCount: count, ReturnType: returnType, Exceptions: exceptions}
}

func (l *LSP) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	summary["lsp_compliance_rate"] = complianceRate(results)
}
