package principles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/principles"
)

const kissSimpleFunction = `def add(a, b):
    return a + b
`

func TestKISSScoresSimpleFunctionPerfectly(t *testing.T) {
	unit := parseUnit(t, kissSimpleFunction)

	kiss := principles.NewKISS(principles.DefaultKISSConfig())
	result := kiss.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	assert.Equal(t, 1.0, result.SubRecords[0].Score)
	assert.Empty(t, result.SubRecords[0].Findings)
}

const kissTooManyParameters = `def handle(a, b, c, d, e, f, g):
    return a
`

func TestKISSFlagsTooManyParameters(t *testing.T) {
	unit := parseUnit(t, kissTooManyParameters)

	kiss := principles.NewKISS(principles.DefaultKISSConfig())
	result := kiss.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	sub := result.SubRecords[0]
	assert.Less(t, sub.Score, 1.0)

	found := false
	for _, f := range sub.Findings {
		if f.Kind == "kiss.too_many_parameters" {
			found = true
		}
	}
	assert.True(t, found, "expected a too_many_parameters finding")
}

const kissDeeplyNested = `def deep(items):
    if items:
        for item in items:
            while item:
                if item.value:
                    item = item.next
    return items
`

func TestKISSFlagsDeepNesting(t *testing.T) {
	unit := parseUnit(t, kissDeeplyNested)

	kiss := principles.NewKISS(principles.DefaultKISSConfig())
	result := kiss.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	sub := result.SubRecords[0]

	found := false
	for _, f := range sub.Findings {
		if f.Kind == "kiss.nesting_too_deep" {
			found = true
		}
	}
	assert.True(t, found, "expected a nesting_too_deep finding")
}
