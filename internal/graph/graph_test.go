package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeFirstWins(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:a.js", Name: "a.js", NodeType: NodeFile, Language: LangJS, Line: 1})
	g.AddNode(Node{ID: "file:a.js", Name: "a.js (again)", NodeType: NodeFile, Language: LangJS, Line: 99})

	n, ok := g.Nodes["file:a.js"]
	require.True(t, ok)
	assert.Equal(t, 1, n.Line)
	assert.Equal(t, "a.js", n.Name)
}

func TestAddEdgeIndexesBothDirections(t *testing.T) {
	g := New()
	g.AddEdge(Edge{Source: "file:a.js", Target: "file:b.js", EdgeType: EdgeImports})

	assert.ElementsMatch(t, []string{"file:b.js"}, g.Neighbors("file:a.js", Forward))
	assert.ElementsMatch(t, []string{"file:a.js"}, g.Neighbors("file:b.js", Backward))
	assert.ElementsMatch(t, []string{"file:b.js"}, g.Neighbors("file:a.js", Both))
}

func TestDanglingTargetTolerated(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:a.js", NodeType: NodeFile, Language: LangJS})
	g.AddEdge(Edge{Source: "file:a.js", Target: "__pkg__/left-pad", EdgeType: EdgeImports})

	assert.Len(t, g.Edges, 1)
	_, exists := g.Nodes["__pkg__/left-pad"]
	assert.False(t, exists)
}

func TestStatsCountsAndOrdering(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:a.js", File: "a.js", NodeType: NodeFile, Language: LangJS})
	g.AddNode(Node{ID: "file:b.py", File: "b.py", NodeType: NodeFile, Language: LangPython})
	g.AddEdge(Edge{Source: "file:a.js", Target: "file:b.py", EdgeType: EdgeImports})
	g.AddEdge(Edge{Source: "file:a.js", Target: "file:b.py", EdgeType: EdgeImports})
	g.AddEdge(Edge{Source: "file:a.js", Target: "env:X", EdgeType: EdgeEnvUses})
	g.AddBridge(Bridge{BridgeType: BridgeMQTT, Key: "t"})

	s := g.Stats()
	assert.Equal(t, 2, s.NodeCount)
	assert.Equal(t, 3, s.EdgeCount)
	assert.Equal(t, 1, s.BridgeCount)
	assert.Equal(t, 2, s.FileCount)
	assert.Equal(t, []string{"js", "python"}, s.Languages)
	require.Len(t, s.EdgeTypes, 2)
	assert.Equal(t, CountedKey{Key: "imports", Count: 2}, s.EdgeTypes[0])
	assert.Equal(t, CountedKey{Key: "env_uses", Count: 1}, s.EdgeTypes[1])
}
