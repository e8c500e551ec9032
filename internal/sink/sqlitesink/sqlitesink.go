// Package sqlitesink writes a scanned graph into a local SQLite file for
// ad hoc SQL exploration (`codegraph scan --sqlite out.db`). It is the
// lightest of the three sinks: no server, no credentials, just a single
// file a reviewer can open with any SQLite client.
package sqlitesink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id        TEXT PRIMARY KEY,
	file      TEXT,
	name      TEXT NOT NULL,
	node_type TEXT NOT NULL,
	language  TEXT NOT NULL,
	line      INTEGER,
	metadata  TEXT
);
CREATE INDEX IF NOT EXISTS idx_nodes_file ON nodes(file);
CREATE INDEX IF NOT EXISTS idx_nodes_type ON nodes(node_type);

CREATE TABLE IF NOT EXISTS edges (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	source    TEXT NOT NULL,
	target    TEXT NOT NULL,
	edge_type TEXT NOT NULL,
	file      TEXT,
	line      INTEGER,
	metadata  TEXT
);
CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
CREATE INDEX IF NOT EXISTS idx_edges_type ON edges(edge_type);

CREATE TABLE IF NOT EXISTS bridges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	bridge_type TEXT NOT NULL,
	key         TEXT NOT NULL,
	producers   TEXT NOT NULL,
	consumers   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bridges_type_key ON bridges(bridge_type, key);
`

// Sink writes graph.Graph snapshots to a SQLite database file.
type Sink struct {
	db *sqlx.DB
}

// Open opens the SQLite file at path (creating it if absent), enables
// WAL mode, and creates any missing tables. Rows already in an existing
// file stay until WriteGraph replaces them.
func Open(path string) (*Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database at %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Sink{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Sink) Close() error {
	return s.db.Close()
}

// WriteGraph replaces every row in nodes/edges/bridges with g's current
// contents, inside a single transaction.
func (s *Sink) WriteGraph(ctx context.Context, g *graph.Graph) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"bridges", "edges", "nodes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := writeNodes(ctx, tx, g); err != nil {
		return err
	}
	if err := writeEdges(ctx, tx, g); err != nil {
		return err
	}
	if err := writeBridges(ctx, tx, g); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func writeNodes(ctx context.Context, tx *sqlx.Tx, g *graph.Graph) error {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO nodes (id, file, name, node_type, language, line, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare node insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range g.Nodes {
		metadataJSON, err := marshalMetadata(n.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for node %s: %w", n.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, n.ID, n.File, n.Name, string(n.NodeType), string(n.Language), n.Line, metadataJSON); err != nil {
			return fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}
	return nil
}

func writeEdges(ctx context.Context, tx *sqlx.Tx, g *graph.Graph) error {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO edges (source, target, edge_type, file, line, metadata)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare edge insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range g.Edges {
		metadataJSON, err := marshalMetadata(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for edge %s->%s: %w", e.Source, e.Target, err)
		}
		if _, err := stmt.ExecContext(ctx, e.Source, e.Target, string(e.EdgeType), e.File, e.Line, metadataJSON); err != nil {
			return fmt.Errorf("insert edge %s->%s: %w", e.Source, e.Target, err)
		}
	}
	return nil
}

func writeBridges(ctx context.Context, tx *sqlx.Tx, g *graph.Graph) error {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO bridges (bridge_type, key, producers, consumers)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare bridge insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range g.Bridges {
		producersJSON, err := json.Marshal(b.Producers)
		if err != nil {
			return fmt.Errorf("marshal producers for bridge %s: %w", b.Key, err)
		}
		consumersJSON, err := json.Marshal(b.Consumers)
		if err != nil {
			return fmt.Errorf("marshal consumers for bridge %s: %w", b.Key, err)
		}
		if _, err := stmt.ExecContext(ctx, string(b.BridgeType), b.Key, string(producersJSON), string(consumersJSON)); err != nil {
			return fmt.Errorf("insert bridge %s: %w", b.Key, err)
		}
	}
	return nil
}

func marshalMetadata(m graph.Metadata) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
