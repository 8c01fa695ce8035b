// Package astutil provides the AST Services used by every principle
// analyzer: tree traversal, source-text extraction, name resolution, and
// docstring detection over tree-sitter-python parse trees.
//
// Grounded on _examples/standardbeagle-lci/internal/symbollinker/extractor.go
// (GetNodeText, GetNodeLocation, FindChildByType/FindChildrenByType) and the
// recursive-descent walking pattern used throughout that package.
package astutil

import sitter "github.com/tree-sitter/go-tree-sitter"

// NodeSource returns the exact source text spanned by node, bounds-checked
// against content so a malformed span never panics.
func NodeSource(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start, end := int(node.StartByte()), int(node.EndByte())
	if start > len(content) || end > len(content) || start > end {
		return ""
	}
	return string(content[start:end])
}

// Location is a 1-indexed line/column pair plus the originating path, for
// Finding construction.
type Location struct {
	Path   string
	Line   int
	Column int
	Offset int
}

// NodeLocation converts a tree-sitter 0-indexed start position into a
// 1-indexed Location.
func NodeLocation(node *sitter.Node, path string) Location {
	if node == nil {
		return Location{Path: path, Line: 1, Column: 1}
	}
	p := node.StartPosition()
	return Location{Path: path, Line: int(p.Row) + 1, Column: int(p.Column) + 1, Offset: int(node.StartByte())}
}

// EndLine returns the 1-indexed line the node's span ends on.
func EndLine(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.EndPosition().Row) + 1
}

// FindChildByType returns the first direct child of node whose Kind()
// equals kind, or nil.
func FindChildByType(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// FindChildrenByType returns every direct child of node whose Kind() equals
// kind, in document order.
func FindChildrenByType(node *sitter.Node, kind string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			out = append(out, child)
		}
	}
	return out
}

// Walk performs a pre-order traversal of the subtree rooted at node,
// calling visit on every node including node itself. Returning false from
// visit skips that node's children but continues the walk elsewhere.
func Walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		Walk(node.Child(i), visit)
	}
}

// FindAll collects every descendant of node (node itself included) whose
// Kind() equals kind.
func FindAll(node *sitter.Node, kind string) []*sitter.Node {
	var out []*sitter.Node
	Walk(node, func(n *sitter.Node) bool {
		if n.Kind() == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// NameOf resolves the textual name of an identifier, attribute, or
// subscript expression node — the three shapes Python code uses to name a
// callee, base class, or decorator. A call node resolves to the name of
// its callee (so "raise ValueError(...)" yields "ValueError"). Any other
// node kind yields ("", false).
func NameOf(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Kind() {
	case "identifier":
		return NodeSource(node, content), true
	case "attribute":
		attr := node.ChildByFieldName("attribute")
		if attr == nil {
			return "", false
		}
		return NodeSource(attr, content), true
	case "subscript":
		value := node.ChildByFieldName("value")
		return NameOf(value, content)
	case "call":
		fn := node.ChildByFieldName("function")
		return NameOf(fn, content)
	default:
		return "", false
	}
}

// QualifiedNameOf resolves a dotted name ("module.Class") for an attribute
// chain, falling back to NameOf for a bare identifier.
func QualifiedNameOf(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "attribute" {
		object := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		prefix := QualifiedNameOf(object, content)
		name := NodeSource(attr, content)
		if prefix == "" {
			return name
		}
		return prefix + "." + name
	}
	return NodeSource(node, content)
}

// Docstring extracts a function or class docstring: the string literal of
// the first expression_statement in body, if present.
func Docstring(body *sitter.Node, content []byte) string {
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	if first.ChildCount() == 0 {
		return ""
	}
	strNode := first.Child(0)
	if strNode == nil || strNode.Kind() != "string" {
		return ""
	}
	return stripStringDelimiters(NodeSource(strNode, content))
}

// stripStringDelimiters trims Python string prefixes/quotes so callers get
// the literal text rather than source syntax.
func stripStringDelimiters(s string) string {
	for _, prefix := range []string{"r", "R", "b", "B", "f", "F", "u", "U", "rb", "Rb", "rB", "RB", "br", "Br", "bR", "BR"} {
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			s = s[len(prefix):]
			break
		}
	}
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		n := len(quote)
		if len(s) >= 2*n && s[:n] == quote && s[len(s)-n:] == quote {
			return s[n : len(s)-n]
		}
	}
	return s
}

// IsDecoratedWith reports whether node (expected to be a function_definition
// or class_definition, possibly wrapped in a decorated_definition parent)
// carries a decorator whose resolved name matches any of names.
func IsDecoratedWith(node *sitter.Node, content []byte, names ...string) bool {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return false
	}
	for _, dec := range FindChildrenByType(parent, "decorator") {
		if dec.ChildCount() == 0 {
			continue
		}
		target := dec.Child(dec.ChildCount() - 1)
		name, ok := NameOf(target, content)
		if !ok {
			name = QualifiedNameOf(target, content)
		}
		for _, want := range names {
			if name == want {
				return true
			}
		}
	}
	return false
}

// BodyOf returns the block field of a class_definition or function_definition
// node.
func BodyOf(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	return node.ChildByFieldName("body")
}

// Identifiers collects the text of every identifier node under root,
// used by SRP's cohesion measure (shared-token overlap across methods).
func Identifiers(root *sitter.Node, content []byte) []string {
	var out []string
	for _, n := range FindAll(root, "identifier") {
		out = append(out, NodeSource(n, content))
	}
	return out
}
