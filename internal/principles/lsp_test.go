package principles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/principles"
)

const lspParamCountMismatch = `class Shape:
    def area(self):
        return 0

class Square(Shape):
    def area(self, unit):
        return unit * unit
`

func TestLSPFlagsParamCountMismatchOnOverride(t *testing.T) {
	unit := parseUnit(t, lspParamCountMismatch)

	lsp := principles.NewLSP()
	result := lsp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 2)

	found := false
	for _, sub := range result.SubRecords {
		if sub.Name != "Square" {
			continue
		}
		found = true
		assert.Less(t, sub.Score, 1.0)
		kinds := map[string]bool{}
		for _, f := range sub.Findings {
			kinds[f.Kind] = true
		}
		assert.True(t, kinds["lsp.param_count_mismatch"])
	}
	assert.True(t, found, "expected a SubRecord for Square")
}

const lspConsistentOverride = `class Shape:
    def area(self):
        return 0

class Circle(Shape):
    def area(self):
        return 3
`

func TestLSPDoesNotFlagConsistentOverride(t *testing.T) {
	unit := parseUnit(t, lspConsistentOverride)

	lsp := principles.NewLSP()
	result := lsp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 2)
	for _, sub := range result.SubRecords {
		assert.Empty(t, sub.Findings, "class %q should have no LSP findings", sub.Name)
	}
}
