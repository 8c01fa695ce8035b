// Package source implements the Source Loader: encoding-tolerant file
// reading, Python parsing via tree-sitter, and deterministic directory
// enumeration.
//
// Grounded on _examples/standardbeagle-lci/internal/parser/parser_language_setup.go
// (tree-sitter parser setup) and
// _examples/original_source/code_quality_analyzer/base_analyzer.py's
// analyze_file (utf-8-then-latin-1 read strategy).
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonSuffix is the file extension enumerated as a Python source file.
const PythonSuffix = ".py"

// ErrUnreadable is returned when a file can be decoded under neither
// attempted encoding.
var ErrUnreadable = errors.New("source: file could not be decoded as utf-8 or latin-1")

// ErrParse is returned either when tree-sitter could not produce a tree at
// all (catastrophic parser misconfiguration) or when it produced a tree
// whose root node is marked erroneous — tree-sitter is error-tolerant and
// still returns a tree for malformed source, so HasError() on the root is
// the signal a genuine syntax error happened, not a nil tree.
var ErrParse = errors.New("source: python source could not be parsed")

// Unit is a SourceUnit: a file's path, its decoded content, and its parsed
// tree. Content is retained for raw-line access (several detectors slice
// function bodies by line range); the tree is retained for structural
// traversal.
type Unit struct {
	Path    string
	Content []byte
	Tree    *sitter.Tree
}

// Close releases the tree-sitter tree. Safe to call on a zero Unit.
func (u *Unit) Close() {
	if u != nil && u.Tree != nil {
		u.Tree.Close()
		u.Tree = nil
	}
}

// Loader owns a single tree-sitter parser configured for Python. A Loader
// is not safe for concurrent use by multiple goroutines — callers that
// parallelize directory analysis must construct one Loader per worker.
type Loader struct {
	parser *sitter.Parser
}

// NewLoader constructs a Loader with a fresh tree-sitter Python parser.
func NewLoader() (*Loader, error) {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(tspython.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("source: configuring python grammar: %w", err)
	}
	return &Loader{parser: parser}, nil
}

// Close releases the underlying parser.
func (l *Loader) Close() {
	if l.parser != nil {
		l.parser.Close()
	}
}

// ReadFile reads path, falling back from UTF-8 to Latin-1 on decode
// failure, then parses the decoded bytes into a tree-sitter tree.
//
// Latin-1 decoding needs no third-party library: Latin-1's printable
// range maps byte-for-codepoint onto Unicode, so re-interpreting the raw
// bytes as UTF-8 after widening each byte to its own rune is a correct
// Latin-1 decode — see decodeLatin1.
func (l *Loader) ReadFile(path string) (*Unit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	content := raw
	if !isValidUTF8(raw) {
		content = decodeLatin1(raw)
	}

	tree := l.parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, path)
	}
	if root := tree.RootNode(); root == nil || root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: %s: syntax error", ErrParse, path)
	}

	return &Unit{Path: path, Content: content, Tree: tree}, nil
}

func isValidUTF8(b []byte) bool {
	return strings.ToValidUTF8(string(b), "�") == string(b)
}

// decodeLatin1 reinterprets raw Latin-1 bytes as a UTF-8 byte slice by
// widening every byte to its Unicode code point.
func decodeLatin1(raw []byte) []byte {
	out := make([]rune, len(raw))
	for i, b := range raw {
		out[i] = rune(b)
	}
	return []byte(string(out))
}

// Enumerate walks root and returns every file ending in PythonSuffix, in
// sorted path order, so directory analysis is deterministic (spec
// Property 3/4). excludes holds doublestar glob patterns (matched against
// the file's path relative to root, e.g. "**/migrations/**" or
// "test_*.py") that opt a file out of analysis entirely; a nil or empty
// slice excludes nothing.
func Enumerate(root string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			switch name {
			case "__pycache__", "venv", ".venv", "node_modules", "build", "dist":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, PythonSuffix) {
			return nil
		}
		if matchesAny(root, path, excludes) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: enumerating %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// matchesAny reports whether path, relative to root, matches any of the
// given doublestar glob patterns. A pattern that fails to compile is
// treated as a non-match rather than an error, since exclude patterns are
// a best-effort filter, not a hard requirement of a successful run.
func matchesAny(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
