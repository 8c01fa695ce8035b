package principles

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// KISSConfig holds the "keep it simple" analyzer's thresholds, grounded
// on kiss_analyzer.py's KISSAnalyzer defaults.
type KISSConfig struct {
	MaxMethodLines            int `yaml:"max_method_lines"`
	MaxNestingDepth           int `yaml:"max_nesting_depth"`
	MaxCyclomaticComplexity   int `yaml:"max_cyclomatic_complexity"`
	MaxCognitiveComplexity    int `yaml:"max_cognitive_complexity"`
	MaxParameters             int `yaml:"max_parameters"`
}

func DefaultKISSConfig() KISSConfig {
	return KISSConfig{
		MaxMethodLines:          20,
		MaxNestingDepth:         3,
		MaxCyclomaticComplexity: 10,
		MaxCognitiveComplexity:  15,
		MaxParameters:           5,
	}
}

// KISS flags functions that are long, deeply nested, branchy, or take too
// many parameters — the five complexity dimensions kiss_analyzer.py
// measures per function.
type KISS struct {
	Config KISSConfig
}

func NewKISS(cfg KISSConfig) *KISS { return &KISS{Config: cfg} }

func (k *KISS) Name() string        { return "kiss" }
func (k *KISS) Description() string { return "Detects overly long, deeply nested, or branchy functions." }

func (k *KISS) AnalyzeFileImpl(path string, content []byte, tree *sitter.Tree) analyzer.AnalyzerResult {
	var subs []analyzer.SubRecord
	var scores []float64

	cfg := k.Config
	if cfg.MaxMethodLines <= 0 {
		cfg = DefaultKISSConfig()
	}

	for _, fn := range AllFunctions(tree) {
		sub := k.analyzeFunction(path, fn, content, cfg)
		subs = append(subs, sub)
		scores = append(scores, sub.Score)
	}

	return analyzer.AnalyzerResult{Path: path, AnalyzerID: k.Name(), Score: fileScore(scores), SubRecords: subs}
}

func (k *KISS) analyzeFunction(path string, fn *sitter.Node, content []byte, cfg KISSConfig) analyzer.SubRecord {
	name := astutil.NodeSource(fn.ChildByFieldName("name"), content)
	body := astutil.BodyOf(fn)

	startLine := int(fn.StartPosition().Row) + 1
	lines := astutil.EndLine(fn) - startLine + 1
	nesting := nestingDepth(body, 0)
	cyclomatic := cyclomaticComplexity(body)
	cognitive := cognitiveComplexity(body, 0)
	params := paramCount(fn, content)
	complexConds := complexConditionals(body)

	var findings []analyzer.Finding
	var severities []float64

	addViolation := func(kind string, measured, threshold int, detail string) {
		if measured <= threshold {
			return
		}
		sev := float64(measured-threshold) / float64(threshold)
		if sev > 1 {
			sev = 1
		}
		severities = append(severities, sev)
		findings = append(findings, newFinding(kind, path, fn, detail, sev))
	}

	addViolation("kiss.method_too_long", lines, cfg.MaxMethodLines,
		fmt.Sprintf("function %q is %d lines (max %d)", name, lines, cfg.MaxMethodLines))
	addViolation("kiss.nesting_too_deep", nesting, cfg.MaxNestingDepth,
		fmt.Sprintf("function %q nests %d deep (max %d)", name, nesting, cfg.MaxNestingDepth))
	addViolation("kiss.cyclomatic_too_high", cyclomatic, cfg.MaxCyclomaticComplexity,
		fmt.Sprintf("function %q has cyclomatic complexity %d (max %d)", name, cyclomatic, cfg.MaxCyclomaticComplexity))
	addViolation("kiss.cognitive_too_high", cognitive, cfg.MaxCognitiveComplexity,
		fmt.Sprintf("function %q has cognitive complexity %d (max %d)", name, cognitive, cfg.MaxCognitiveComplexity))
	addViolation("kiss.too_many_parameters", params, cfg.MaxParameters,
		fmt.Sprintf("function %q takes %d parameters (max %d)", name, params, cfg.MaxParameters))

	if len(complexConds) > 0 {
		sev := float64(len(complexConds)) / 3.0
		if sev > 1 {
			sev = 1
		}
		severities = append(severities, sev)
		findings = append(findings, newFinding(
			"kiss.complex_conditional", path, fn,
			fmt.Sprintf("function %q has %d overly complex conditional expression(s)", name, len(complexConds)),
			sev,
		))
	}

	sum := 0.0
	for _, s := range severities {
		sum += s
	}
	score := clamp01(1 - 0.2*sum)

	return analyzer.SubRecord{
		Name: name, Score: score, Findings: findings,
		Recommendation: recommendationFor("KISS", len(findings)),
	}
}

var nestingKinds = map[string]bool{
	"if_statement": true, "for_statement": true, "while_statement": true,
	"with_statement": true, "try_statement": true,
}

func nestingDepth(node *sitter.Node, current int) int {
	if node == nil {
		return current
	}
	max := current
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		next := current
		if nestingKinds[child.Kind()] {
			next = current + 1
		}
		if d := nestingDepth(child, next); d > max {
			max = d
		}
	}
	return max
}

func cyclomaticComplexity(node *sitter.Node) int {
	complexity := 1
	astutil.Walk(node, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "if_statement", "elif_clause", "while_statement", "for_statement":
			complexity++
		case "boolean_operator":
			complexity += len(flattenBoolOp(n)) - 1
		}
		return true
	})
	return complexity
}

func cognitiveComplexity(node *sitter.Node, level int) int {
	if node == nil {
		return 0
	}
	complexity := 0
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "if_statement", "for_statement", "while_statement", "with_statement":
			complexity += level + 1
			complexity += cognitiveComplexity(child, level+1)
			if elseClause := astutil.FindChildByType(child, "else_clause"); elseClause != nil {
				complexity++
			}
			continue
		case "boolean_operator":
			complexity += len(flattenBoolOp(child)) - 1
		}
		complexity += cognitiveComplexity(child, level)
	}
	return complexity
}

func paramCount(fn *sitter.Node, content []byte) int {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return 0
	}
	count := 0
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
	return count
}

// flattenBoolOp collects the operands of a left-associative chain of
// boolean_operator nodes sharing the same operator, the tree-sitter
// analogue of Python ast.BoolOp's flat "values" list.
func flattenBoolOp(node *sitter.Node) []*sitter.Node {
	if node == nil || node.Kind() != "boolean_operator" {
		return []*sitter.Node{node}
	}
	op := node.ChildByFieldName("operator")
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")

	var operands []*sitter.Node
	if left != nil && left.Kind() == "boolean_operator" && sameOperator(left, op) {
		operands = append(operands, flattenBoolOp(left)...)
	} else {
		operands = append(operands, left)
	}
	operands = append(operands, right)
	return operands
}

func sameOperator(node, op *sitter.Node) bool {
	inner := node.ChildByFieldName("operator")
	if inner == nil || op == nil {
		return false
	}
	return inner.Kind() == op.Kind()
}

// complexConditionals finds boolean_operator expressions with more than
// two flattened operands, boolean_operators nesting a different operator
// (mixed and/or), and comparison_operator chains with more than one
// operator — kiss_analyzer.py's three complex-conditional shapes.
func complexConditionals(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	astutil.Walk(node, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "boolean_operator":
			if len(flattenBoolOp(n)) > 2 {
				out = append(out, n)
				return true
			}
			left := n.ChildByFieldName("left")
			if left != nil && left.Kind() == "boolean_operator" && !sameOperator(left, n.ChildByFieldName("operator")) {
				out = append(out, n)
			}
		case "comparison_operator":
			if countComparisonOperators(n) > 1 {
				out = append(out, n)
			}
		}
		return true
	})
	return out
}

func countComparisonOperators(node *sitter.Node) int {
	operators := 0
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "<", ">", "<=", ">=", "==", "!=", "in", "not in", "is", "is not":
			operators++
		}
	}
	return operators
}

func (k *KISS) ContributeSummary(summary map[string]interface{}, results []analyzer.AnalyzerResult) {
	summary["kiss_compliance_rate"] = complianceRate(results)
}
