package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileClustersGroupsConnectedFiles(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:a.js", File: "a.js", NodeType: NodeFile, Language: LangJS})
	g.AddNode(Node{ID: "file:b.js", File: "b.js", NodeType: NodeFile, Language: LangJS})
	g.AddEdge(Edge{Source: "file:a.js", Target: "file:b.js", EdgeType: EdgeImports})

	g.AddNode(Node{ID: "file:solo.py", File: "solo.py", NodeType: NodeFile, Language: LangPython})

	clusters := g.FileClusters(2)
	assert.Len(t, clusters, 1)
	assert.Equal(t, []string{"a.js", "b.js"}, clusters[0].Files)
}

func TestFileClustersOrderedBySizeDescending(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "file:a.js", File: "a.js", NodeType: NodeFile, Language: LangJS})
	g.AddNode(Node{ID: "file:b.js", File: "b.js", NodeType: NodeFile, Language: LangJS})
	g.AddNode(Node{ID: "file:c.js", File: "c.js", NodeType: NodeFile, Language: LangJS})
	g.AddEdge(Edge{Source: "file:a.js", Target: "file:b.js", EdgeType: EdgeImports})
	g.AddEdge(Edge{Source: "file:b.js", Target: "file:c.js", EdgeType: EdgeImports})

	g.AddNode(Node{ID: "file:x.py", File: "x.py", NodeType: NodeFile, Language: LangPython})
	g.AddNode(Node{ID: "file:y.py", File: "y.py", NodeType: NodeFile, Language: LangPython})
	g.AddEdge(Edge{Source: "file:x.py", Target: "file:y.py", EdgeType: EdgeImports})

	clusters := g.FileClusters(2)
	assert.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Files, 3)
	assert.Len(t, clusters[1].Files, 2)
}
