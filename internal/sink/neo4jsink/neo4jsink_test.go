package neo4jsink

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

// testConn returns connection details for a scratch Neo4j instance,
// skipping the test when none is configured.
func testConn(t *testing.T) (uri, user, password string) {
	t.Helper()
	uri = os.Getenv("CODEGRAPH_TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("CODEGRAPH_TEST_NEO4J_URI not set, skipping neo4j sink test")
	}
	user = os.Getenv("CODEGRAPH_TEST_NEO4J_USER")
	password = os.Getenv("CODEGRAPH_TEST_NEO4J_PASSWORD")
	return uri, user, password
}

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.AddNode(graph.Node{ID: "file:a.js", File: "a.js", Name: "a.js", NodeType: graph.NodeFile, Language: graph.LangJS})
	g.AddNode(graph.Node{ID: "file:b.py", File: "b.py", Name: "b.py", NodeType: graph.NodeFile, Language: graph.LangPython})
	g.AddEdge(graph.Edge{Source: "file:a.js", Target: "file:b.py", EdgeType: graph.EdgeCalls, File: "a.js", Line: 4})
	g.AddBridge(graph.Bridge{
		BridgeType: graph.BridgeHTTP,
		Key:        "get /users/{param}",
		Producers:  []graph.Actor{{File: "a.js", Language: graph.LangJS, Action: "call"}},
		Consumers:  []graph.Actor{{File: "b.py", Language: graph.LangPython, Action: "route"}},
	})
	return g
}

func TestWriteGraphMergesNodesEdgesAndBridges(t *testing.T) {
	uri, user, password := testConn(t)
	ctx := context.Background()

	s, err := Open(ctx, uri, user, password, "neo4j")
	require.NoError(t, err)
	defer s.Close(ctx)

	require.NoError(t, s.WriteGraph(ctx, sampleGraph()))

	result, err := neo4j.ExecuteQuery(ctx, s.driver,
		"MATCH (n:CodeGraphNode) WHERE n.id IN $ids RETURN count(n) AS c",
		map[string]any{"ids": []string{"file:a.js", "file:b.py"}},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database))
	require.NoError(t, err)
	count, _ := result.Records[0].Get("c")
	assert.Equal(t, int64(2), count)
}

func TestWriteGraphIsIdempotentOnReplay(t *testing.T) {
	uri, user, password := testConn(t)
	ctx := context.Background()

	s, err := Open(ctx, uri, user, password, "neo4j")
	require.NoError(t, err)
	defer s.Close(ctx)

	g := sampleGraph()
	require.NoError(t, s.WriteGraph(ctx, g))
	require.NoError(t, s.WriteGraph(ctx, g))

	result, err := neo4j.ExecuteQuery(ctx, s.driver,
		"MATCH (n:CodeGraphNode {id: $id}) RETURN count(n) AS c",
		map[string]any{"id": "file:a.js"},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database))
	require.NoError(t, err)
	count, _ := result.Records[0].Get("c")
	assert.Equal(t, int64(1), count)
}
