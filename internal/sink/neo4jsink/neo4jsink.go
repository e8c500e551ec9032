// Package neo4jsink writes a scanned graph into Neo4j so it can be
// traversed and visualized with Cypher, mirroring the node/edge/bridge
// shape the rest of codegraph works with rather than exposing Neo4j's
// own property-graph idioms directly.
package neo4jsink

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

// Sink writes graph.Graph snapshots into Neo4j via MERGE, so repeated
// writes for the same repository update existing nodes instead of
// duplicating them.
type Sink struct {
	driver   neo4j.DriverWithContext
	database string
}

// Open connects to uri with the given credentials and verifies
// connectivity before returning.
func Open(ctx context.Context, uri, user, password, database string) (*Sink, error) {
	if uri == "" {
		return nil, fmt.Errorf("neo4j uri is required")
	}
	if database == "" {
		database = "neo4j"
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("connect to neo4j at %s: %w", uri, err)
	}

	return &Sink{driver: driver, database: database}, nil
}

// Close releases the underlying driver.
func (s *Sink) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// WriteGraph MERGEs every node, edge, and bridge in g into Neo4j. Nodes
// are upserted by id; a prior scan's node that no longer exists in g is
// left in place rather than deleted, since a scan never has visibility
// into the full history of what a long-lived graph in Neo4j holds.
func (s *Sink) WriteGraph(ctx context.Context, g *graph.Graph) error {
	if err := s.writeNodes(ctx, g); err != nil {
		return err
	}
	if err := s.writeEdges(ctx, g); err != nil {
		return err
	}
	if err := s.writeBridges(ctx, g); err != nil {
		return err
	}
	return nil
}

func (s *Sink) writeNodes(ctx context.Context, g *graph.Graph) error {
	rows := make([]map[string]any, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		rows = append(rows, map[string]any{
			"id":        n.ID,
			"file":      n.File,
			"name":      n.Name,
			"node_type": string(n.NodeType),
			"language":  string(n.Language),
			"line":      n.Line,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	query := `
		UNWIND $rows AS row
		MERGE (n:CodeGraphNode {id: row.id})
		SET n.file = row.file,
			n.name = row.name,
			n.node_type = row.node_type,
			n.language = row.language,
			n.line = row.line
	`
	if _, err := neo4j.ExecuteQuery(ctx, s.driver, query,
		map[string]any{"rows": rows},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithWritersRouting()); err != nil {
		return fmt.Errorf("merge nodes: %w", err)
	}
	return nil
}

func (s *Sink) writeEdges(ctx context.Context, g *graph.Graph) error {
	rows := make([]map[string]any, 0, len(g.Edges))
	for _, e := range g.Edges {
		rows = append(rows, map[string]any{
			"source":    e.Source,
			"target":    e.Target,
			"edge_type": string(e.EdgeType),
			"file":      e.File,
			"line":      e.Line,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	// Target nodes in a dependency graph are sometimes dangling
	// (unresolved imports, undefined env vars); MERGE a stub so the
	// edge has somewhere to point rather than silently dropping it.
	query := `
		UNWIND $rows AS row
		MERGE (from:CodeGraphNode {id: row.source})
		MERGE (to:CodeGraphNode {id: row.target})
		MERGE (from)-[r:RELATES {edge_type: row.edge_type, file: row.file, line: row.line}]->(to)
	`
	if _, err := neo4j.ExecuteQuery(ctx, s.driver, query,
		map[string]any{"rows": rows},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithWritersRouting()); err != nil {
		return fmt.Errorf("merge edges: %w", err)
	}
	return nil
}

func (s *Sink) writeBridges(ctx context.Context, g *graph.Graph) error {
	rows := make([]map[string]any, 0, len(g.Bridges))
	for i, b := range g.Bridges {
		producerFiles := make([]string, 0, len(b.Producers))
		for _, p := range b.Producers {
			producerFiles = append(producerFiles, p.File)
		}
		consumerFiles := make([]string, 0, len(b.Consumers))
		for _, c := range b.Consumers {
			consumerFiles = append(consumerFiles, c.File)
		}
		rows = append(rows, map[string]any{
			"bridge_id":      fmt.Sprintf("%s:%s:%d", b.BridgeType, b.Key, i),
			"bridge_type":    string(b.BridgeType),
			"key":            b.Key,
			"producer_files": producerFiles,
			"consumer_files": consumerFiles,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	query := `
		UNWIND $rows AS row
		MERGE (b:CodeGraphBridge {bridge_id: row.bridge_id})
		SET b.bridge_type = row.bridge_type,
			b.key = row.key,
			b.producer_files = row.producer_files,
			b.consumer_files = row.consumer_files
	`
	if _, err := neo4j.ExecuteQuery(ctx, s.driver, query,
		map[string]any{"rows": rows},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithWritersRouting()); err != nil {
		return fmt.Errorf("merge bridges: %w", err)
	}
	return nil
}
