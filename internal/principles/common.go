package principles

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/katichai/pyqa/internal/analyzer"
	"github.com/katichai/pyqa/internal/astutil"
)

// AllClasses returns every class_definition node in the tree, in document
// order.
func AllClasses(tree *sitter.Tree) []*sitter.Node {
	return astutil.FindAll(tree.RootNode(), "class_definition")
}

// AllFunctions returns every function_definition node in the tree
// (including methods), in document order.
func AllFunctions(tree *sitter.Tree) []*sitter.Node {
	return astutil.FindAll(tree.RootNode(), "function_definition")
}

// ModuleLevelFunctions returns function_definition nodes whose parent (or
// whose decorated_definition wrapper's parent) is the module root, i.e.
// free functions rather than methods.
func ModuleLevelFunctions(tree *sitter.Tree) []*sitter.Node {
	root := tree.RootNode()
	var out []*sitter.Node
	count := root.ChildCount()
	for i := uint(0); i < count; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "function_definition":
			out = append(out, child)
		case "decorated_definition":
			if fn := astutil.FindChildByType(child, "function_definition"); fn != nil {
				out = append(out, fn)
			}
		}
	}
	return out
}

// ClassName resolves a class_definition's declared name.
func ClassName(classNode *sitter.Node, content []byte) string {
	return astutil.NodeSource(classNode.ChildByFieldName("name"), content)
}

// BaseNames resolves the simple names of a class's direct base-class list.
func BaseNames(classNode *sitter.Node, content []byte) []string {
	superclasses := classNode.ChildByFieldName("superclasses")
	if superclasses == nil {
		return nil
	}
	var names []string
	count := superclasses.ChildCount()
	for i := uint(0); i < count; i++ {
		child := superclasses.Child(i)
		if child == nil || child.Kind() == "," {
			continue
		}
		if name, ok := astutil.NameOf(child, content); ok {
			names = append(names, name)
		}
	}
	return names
}

// Calls returns every call node within root.
func Calls(root *sitter.Node) []*sitter.Node {
	return astutil.FindAll(root, "call")
}

// newFinding builds a Finding from a node's location.
func newFinding(kind, path string, node *sitter.Node, details string, severity float64) analyzer.Finding {
	loc := astutil.NodeLocation(node, path)
	return analyzer.Finding{
		Kind:     kind,
		Path:     path,
		Line:     loc.Line,
		EndLine:  astutil.EndLine(node),
		Details:  details,
		Severity: clamp01(severity),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// combinedLowerText lowercases and concatenates the given strings with
// spaces, for responsibility-keyword and identifier matching.
func combinedLowerText(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}

// recommendationFor formats a generic remediation message listing the
// count and nature of violations, mirroring the original analyzers'
// templated recommendation strings.
func recommendationFor(principle string, n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("Review %d %s violation(s) and refactor accordingly.", n, principle)
}

// fileScore averages the scores of sub, defaulting to 1.0 for an empty
// file (no classes/functions to penalize).
func fileScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// complianceRate folds per-file scores into a directory-level summary
// entry, mirroring the original's "<name>_compliance_rate" computation
// (mean of per-file scores across successfully analyzed files).
func complianceRate(results []analyzer.AnalyzerResult) float64 {
	var sum float64
	var n int
	for _, r := range results {
		if r.IsError() {
			continue
		}
		sum += r.Score
		n++
	}
	if n == 0 {
		return 1.0
	}
	return sum / float64(n)
}
