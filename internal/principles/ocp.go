package principles

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// builtinConstructors are the bare-Name calls ocp_analyzer.py excludes
// from "concrete instantiation" findings inside __init__.
var builtinConstructors = map[string]bool{
	"list": true, "dict": true, "set": true, "tuple": true,
	"int": true, "float": true, "str": true, "bool": true,
}

// OCP flags classes that branch on runtime type (isinstance/type checks
// or long if/elif chains) or that hard-wire concrete dependencies inside
// their constructor, instead of depending on an abstraction that could be
// extended without modification.
type OCP struct{}

func NewOCP() *OCP { return &OCP{} }

func (o *OCP) Name() string        { return "ocp" }
func (o *OCP) Description() string { return "Detects open/closed principle violations: type-switching and hard-wired concrete dependencies." }

func (o *OCP) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	var subs []analyzer.SubRecord
	var scores []float64

	for _, cls := range AllClasses(tree) {
		if IsAbstraction(cls, content) {
			continue
		}
		sub := o.analyzeClass(path, cls, content)
		subs = append(subs, sub)
		scores = append(scores, sub.Score)
	}

	return analyzer.AnalyzerResult{Path: path, AnalyzerID: o.Name(), Score: fileScore(scores), SubRecords: subs}
}

func (o *OCP) analyzeClass(path string, cls *sitter.Node, content []byte) analyzer.SubRecord {
	name := ClassName(cls, content)
	var findings []analyzer.Finding

	for _, call := range Calls(astutil.BodyOf(cls)) {
		fn := call.ChildByFieldName("function")
		fnName, _ := astutil.NameOf(fn, content)
		if fnName == "isinstance" || fnName == "type" {
			findings = append(findings, newFinding(
				"ocp.type_check", path, call,
				fmt.Sprintf("class %q branches on runtime type via %s()", name, fnName),
				0.1,
			))
		}
	}

	for _, ifStmt := range astutil.FindAll(astutil.BodyOf(cls), "if_statement") {
		if chainLength(ifStmt) >= 3 {
			findings = append(findings, newFinding(
				"ocp.long_conditional_chain", path, ifStmt,
				fmt.Sprintf("class %q has an if/elif chain of length >= 3", name),
				0.1,
			))
		}
	}

	for _, m := range ClassMethods(cls) {
		if MethodName(m, content) != "__init__" {
			continue
		}
		for _, call := range Calls(astutil.BodyOf(m)) {
			fn := call.ChildByFieldName("function")
			if fn == nil || fn.Kind() != "identifier" {
				continue
			}
			fnName := astutil.NodeSource(fn, content)
			if fnName == "" || builtinConstructors[fnName] {
				continue
			}
			if r := []rune(fnName); len(r) == 0 || r[0] < 'A' || r[0] > 'Z' {
				continue
			}
			findings = append(findings, newFinding(
				"ocp.concrete_instantiation", path, call,
				fmt.Sprintf("class %q directly instantiates concrete type %q in __init__", name, fnName),
				0.1,
			))
		}
	}

	score := clamp01(1 - 0.1*float64(len(findings)))
	return analyzer.SubRecord{
		Name: name, Score: score, Findings: findings,
		Recommendation: recommendationFor("OCP", len(findings)),
	}
}

// chainLength counts the if plus each elif link following it, the
// tree-sitter analogue of ocp_analyzer.py following a single-element
// orelse list containing another If node. A trailing else is not counted.
func chainLength(ifStmt *sitter.Node) int {
	length := 1
	count := ifStmt.ChildCount()
	for i := uint(0); i < count; i++ {
		child := ifStmt.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "elif_clause" {
			length++
		}
	}
	return length
}

func (o *OCP) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	summary["ocp_compliance_rate"] = complianceRate(results)
}
