package principles

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// DIP detects high-level classes (more dependents than dependencies) that
// depend on concrete types instead of abstractions: by inheritance, by
// calling a concrete constructor anywhere in their body, or by assigning
// a concrete instance to self in the constructor.
type DIP struct{}

func NewDIP() *DIP { return &DIP{} }

func (d *DIP) Name() string        { return "dip" }
func (d *DIP) Description() string { return "Detects dependency inversion violations: high-level classes wired directly to concrete dependencies." }

func (d *DIP) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	classes := AllClasses(tree)
	isAbstract := map[string]bool{}
	dependencies := map[string]map[string]bool{}

	for _, cls := range classes {
		name := ClassName(cls, content)
		isAbstract[name] = IsAbstraction(cls, content)
		dependencies[name] = classDependencies(cls, content)
	}

	outgoing := map[string]int{}
	incoming := map[string]int{}
	for name, deps := range dependencies {
		outgoing[name] = len(deps)
		for dep := range deps {
			if _, known := dependencies[dep]; known {
				incoming[dep]++
			}
		}
	}

	var subs []analyzer.SubRecord
	var scores []float64

	for _, cls := range classes {
		name := ClassName(cls, content)
		deps := dependencies[name]
		if len(deps) == 0 {
			continue
		}
		highLevel := incoming[name] > outgoing[name]
		if !highLevel {
			continue
		}

		var findings []analyzer.Finding
		for dep := range deps {
			if isAbstract[dep] {
				continue
			}
			findings = append(findings, newFinding(
				"dip.depends_on_concrete", path, cls,
				fmt.Sprintf("high-level class %q depends on concrete type %q", name, dep),
				0.2,
			))
		}
		for _, call := range Calls(astutil.BodyOf(cls)) {
			fn := call.ChildByFieldName("function")
			if fn == nil || fn.Kind() != "identifier" {
				continue
			}
			fnName := astutil.NodeSource(fn, content)
			if !deps[fnName] || isAbstract[fnName] {
				continue
			}
			findings = append(findings, newFinding(
				"dip.instantiates_concrete", path, call,
				fmt.Sprintf("high-level class %q directly instantiates concrete type %q", name, fnName),
				0.2,
			))
		}
		findings = append(findings, newFinding(
			"dip.uninjected_dependency", path, cls,
			fmt.Sprintf("high-level class %q has dependencies not provided via constructor injection", name),
			0.2,
		))

		score := clamp01(1 - 0.2*float64(len(findings)))
		subs = append(subs, analyzer.SubRecord{
			Name: name, Score: score, Findings: findings,
			Recommendation: recommendationFor("DIP", len(findings)),
		})
		scores = append(scores, score)
	}

	return analyzer.AnalyzerResult{Path: path, AnalyzerID: d.Name(), Score: fileScore(scores), SubRecords: subs}
}

// classDependencies gathers a class's base-class names, the targets of
// bare-Name calls in its body, and the types assigned to self attributes
// by a bare-Name call. Only call targets that isConcreteTypeName accepts
// (a capitalized name that is not a builtin constructor) are kept;
// lower-case calls such as helper functions or len() are not counted as
// dependencies.
func classDependencies(cls *sitter.Node, content []byte) map[string]bool {
	deps := map[string]bool{}
	for _, base := range BaseNames(cls, content) {
		deps[base] = true
	}

	body := astutil.BodyOf(cls)
	for _, call := range Calls(body) {
		fn := call.ChildByFieldName("function")
		if fn == nil || fn.Kind() != "identifier" {
			continue
		}
		name := astutil.NodeSource(fn, content)
		if isConcreteTypeName(name) {
			deps[name] = true
		}
	}

	for _, assign := range astutil.FindAll(body, "assignment") {
		left := assign.ChildByFieldName("left")
		right := assign.ChildByFieldName("right")
		if left == nil || right == nil || left.Kind() != "attribute" {
			continue
		}
		object := left.ChildByFieldName("object")
		if object == nil || astutil.NodeSource(object, content) != "self" {
			continue
		}
		if right.Kind() != "call" {
			continue
		}
		fn := right.ChildByFieldName("function")
		if fn == nil || fn.Kind() != "identifier" {
			continue
		}
		name := astutil.NodeSource(fn, content)
		if isConcreteTypeName(name) {
			deps[name] = true
		}
	}

	return deps
}

func isConcreteTypeName(name string) bool {
	if name == "" || builtinConstructors[name] {
		return false
	}
	r := []rune(name)
	return r[0] >= 'A' && r[0] <= 'Z'
}

func (d *DIP) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	summary["dip_compliance_rate"] = complianceRate(results)
}
