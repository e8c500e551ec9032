// Package pgsink writes a scanned graph into PostgreSQL for teams that
// want the result queryable alongside their other data instead of as a
// one-off file.
package pgsink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

const schema = `
CREATE TABLE IF NOT EXISTS codegraph_nodes (
	id        TEXT PRIMARY KEY,
	file      TEXT,
	name      TEXT NOT NULL,
	node_type TEXT NOT NULL,
	language  TEXT NOT NULL,
	line      INTEGER,
	metadata  JSONB
);

CREATE TABLE IF NOT EXISTS codegraph_edges (
	id        BIGSERIAL PRIMARY KEY,
	source    TEXT NOT NULL,
	target    TEXT NOT NULL,
	edge_type TEXT NOT NULL,
	file      TEXT,
	line      INTEGER,
	metadata  JSONB
);
CREATE INDEX IF NOT EXISTS idx_codegraph_edges_source ON codegraph_edges(source);
CREATE INDEX IF NOT EXISTS idx_codegraph_edges_target ON codegraph_edges(target);

CREATE TABLE IF NOT EXISTS codegraph_bridges (
	id          BIGSERIAL PRIMARY KEY,
	bridge_type TEXT NOT NULL,
	key         TEXT NOT NULL,
	producers   JSONB NOT NULL,
	consumers   JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_codegraph_bridges_type_key ON codegraph_bridges(bridge_type, key);
`

// Sink writes graph.Graph snapshots to a PostgreSQL database via a
// pooled connection.
type Sink struct {
	pool *pgxpool.Pool
}

// Open connects to dsn, configures the pool, and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Sink, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Sink{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Sink) Close() {
	s.pool.Close()
}

// WriteGraph replaces every row belonging to this graph's tables with
// g's current contents, inside a single transaction.
func (s *Sink) WriteGraph(ctx context.Context, g *graph.Graph) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"codegraph_bridges", "codegraph_edges", "codegraph_nodes"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	nodeRows := make([][]any, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		metadataJSON, err := marshalMetadata(n.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for node %s: %w", n.ID, err)
		}
		nodeRows = append(nodeRows, []any{n.ID, n.File, n.Name, string(n.NodeType), string(n.Language), nullableLine(n.Line), metadataJSON})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"codegraph_nodes"},
		[]string{"id", "file", "name", "node_type", "language", "line", "metadata"},
		pgx.CopyFromRows(nodeRows)); err != nil {
		return fmt.Errorf("copy nodes: %w", err)
	}

	edgeRows := make([][]any, 0, len(g.Edges))
	for _, e := range g.Edges {
		metadataJSON, err := marshalMetadata(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for edge %s->%s: %w", e.Source, e.Target, err)
		}
		edgeRows = append(edgeRows, []any{e.Source, e.Target, string(e.EdgeType), e.File, nullableLine(e.Line), metadataJSON})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"codegraph_edges"},
		[]string{"source", "target", "edge_type", "file", "line", "metadata"},
		pgx.CopyFromRows(edgeRows)); err != nil {
		return fmt.Errorf("copy edges: %w", err)
	}

	for _, b := range g.Bridges {
		producersJSON, err := json.Marshal(b.Producers)
		if err != nil {
			return fmt.Errorf("marshal producers for bridge %s: %w", b.Key, err)
		}
		consumersJSON, err := json.Marshal(b.Consumers)
		if err != nil {
			return fmt.Errorf("marshal consumers for bridge %s: %w", b.Key, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO codegraph_bridges (bridge_type, key, producers, consumers)
			VALUES ($1, $2, $3, $4)`,
			string(b.BridgeType), b.Key, json.RawMessage(producersJSON), json.RawMessage(consumersJSON))
		if err != nil {
			return fmt.Errorf("insert bridge %s: %w", b.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func nullableLine(line int) any {
	if line == 0 {
		return nil
	}
	return line
}

func marshalMetadata(m graph.Metadata) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
