package principles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/principles"
)

const ocpTypeSwitchingClass = `class ShapeRenderer:
    def render(self, shape):
        if isinstance(shape, Circle):
            return "circle"
        elif isinstance(shape, Square):
            return "square"
        elif isinstance(shape, Triangle):
            return "triangle"
        else:
            return "unknown"
`

func TestOCPFlagsTypeSwitchingAndLongConditionalChain(t *testing.T) {
	unit := parseUnit(t, ocpTypeSwitchingClass)

	ocp := principles.NewOCP()
	result := ocp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	sub := result.SubRecords[0]
	assert.Equal(t, "ShapeRenderer", sub.Name)
	assert.Less(t, sub.Score, 1.0)

	kinds := map[string]bool{}
	for _, f := range sub.Findings {
		kinds[f.Kind] = true
	}
	assert.True(t, kinds["ocp.type_check"], "expected at least one isinstance type_check finding")
	assert.True(t, kinds["ocp.long_conditional_chain"], "expected the 3-branch elif chain flagged")
}

const ocpConcreteInstantiationClass = `class OrderProcessor:
    def __init__(self):
        self.gateway = StripeGateway()
`

func TestOCPFlagsConcreteInstantiationInInit(t *testing.T) {
	unit := parseUnit(t, ocpConcreteInstantiationClass)

	ocp := principles.NewOCP()
	result := ocp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	found := false
	for _, f := range result.SubRecords[0].Findings {
		if f.Kind == "ocp.concrete_instantiation" {
			found = true
		}
	}
	assert.True(t, found, "expected a concrete_instantiation finding")
}

const ocpBuiltinInitClass = `class Bucket:
    def __init__(self):
        self.items = list()
        self.counts = dict()
`

func TestOCPDoesNotFlagBuiltinConstructors(t *testing.T) {
	unit := parseUnit(t, ocpBuiltinInitClass)

	ocp := principles.NewOCP()
	result := ocp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	assert.Empty(t, result.SubRecords[0].Findings)
	assert.Equal(t, 1.0, result.SubRecords[0].Score)
}
