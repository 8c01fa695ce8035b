package principles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/principles"
)

const ispFatInterfaceHierarchy = `class Worker(ABC):
    def start(self): pass
    def stop(self): pass
    def pause(self): pass
    def resume(self): pass
    def status(self): pass
    def configure(self): pass

class SimpleTask(Worker):
    def start(self):
        return True
`

func TestISPChargesImplementerOfFatInterface(t *testing.T) {
	unit := parseUnit(t, ispFatInterfaceHierarchy)

	isp := principles.NewISP(principles.DefaultISPConfig())
	result := isp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1, "only the concrete implementer should get a SubRecord")
	sub := result.SubRecords[0]
	assert.Equal(t, "SimpleTask", sub.Name)
	assert.Less(t, sub.Score, 1.0)

	found := false
	for _, f := range sub.Findings {
		if f.Kind == "isp.fat_interface" {
			found = true
		}
	}
	assert.True(t, found, "expected a fat_interface finding")
}

const ispSmallInterfaceHierarchy = `class Reader(ABC):
    def read(self): pass

class FileReader(Reader):
    def read(self):
        return "data"
`

func TestISPDoesNotFlagSmallInterface(t *testing.T) {
	unit := parseUnit(t, ispSmallInterfaceHierarchy)

	isp := principles.NewISP(principles.DefaultISPConfig())
	result := isp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	assert.Empty(t, result.SubRecords)
}
