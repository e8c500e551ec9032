package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codegraph-dev/codegraph/internal/cache"
	"github.com/codegraph-dev/codegraph/internal/cliutil"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/review"
	"github.com/codegraph-dev/codegraph/internal/scan"
	"github.com/codegraph-dev/codegraph/internal/serialize"
	"github.com/codegraph-dev/codegraph/internal/sink/neo4jsink"
	"github.com/codegraph-dev/codegraph/internal/sink/pgsink"
	"github.com/codegraph-dev/codegraph/internal/sink/sqlitesink"
)

var (
	scanOutput      string
	scanIncremental bool
	scanSQLitePath  string
	scanPostgresDSN string
	scanNeo4jURI    string
	scanReview      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Walk a source tree and emit its dependency graph as JSON",
	Long: `scan discovers every recognized source file under root, extracts nodes
and edges per file, and detects cross-language bridges (MQTT, HTTP,
WebSocket, serial, environment variables). The resulting graph is
printed to stdout (or --output) as JSON, and optionally persisted to
one or more configured sinks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write JSON to this file instead of stdout")
	scanCmd.Flags().BoolVar(&scanIncremental, "incremental", false, "skip re-deriving unchanged files using the bbolt cache")
	scanCmd.Flags().StringVar(&scanSQLitePath, "sqlite", "", "also write the graph to this SQLite file")
	scanCmd.Flags().StringVar(&scanPostgresDSN, "postgres", "", "also write the graph to this PostgreSQL DSN")
	scanCmd.Flags().StringVar(&scanNeo4jURI, "neo4j", "", "also write the graph to this Neo4j bolt:// URI")
	scanCmd.Flags().BoolVar(&scanReview, "review", false, "also emit a review-cluster export alongside the graph")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	ctx := context.Background()

	opts := scan.Options{Root: root}
	if scanIncremental {
		cachePath, err := cache.DefaultPath(cfg.Cache.Directory)
		if err != nil {
			return err
		}
		store, err := cache.Open(cachePath)
		if err != nil {
			return fmt.Errorf("open incremental cache: %w", err)
		}
		defer store.Close()
		opts.CacheStore = store
	}

	g, err := scan.Run(opts)
	if err != nil {
		return err
	}
	if len(g.Nodes) == 0 {
		return cliutil.ErrNoSourceFiles(root)
	}

	doc := serialize.Build(g, nil)
	out := os.Stdout
	if scanOutput != "" {
		f, err := os.Create(scanOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", scanOutput, err)
		}
		defer f.Close()
		out = f
	}
	if err := serialize.Write(out, doc); err != nil {
		return fmt.Errorf("write graph document: %w", err)
	}

	if scanReview {
		if err := writeReviewExport(g); err != nil {
			return err
		}
	}

	if err := writeSinks(ctx, g); err != nil {
		return err
	}

	logger.WithField("nodes", len(g.Nodes)).
		WithField("edges", len(g.Edges)).
		WithField("bridges", len(g.Bridges)).
		Info("scan complete")
	return nil
}

func writeReviewExport(g *graph.Graph) error {
	reviewPath := "review.json"
	if scanOutput != "" {
		reviewPath = scanOutput + ".review.json"
	}
	f, err := os.Create(reviewPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", reviewPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(review.Build(g, cfg.Scan.MinClusterSize)); err != nil {
		return fmt.Errorf("write review export: %w", err)
	}
	logger.Infof("review export written to %s", reviewPath)
	return nil
}

// writeSinks persists g to every sink selected by flag (falling back to
// cfg.Sink when no sink flag was passed), so `scan` and a configured
// default both work without repeating connection details on every call.
func writeSinks(ctx context.Context, g *graph.Graph) error {
	sqlitePath := scanSQLitePath
	postgresDSN := scanPostgresDSN
	neo4jURI := scanNeo4jURI
	if sqlitePath == "" && postgresDSN == "" && neo4jURI == "" {
		switch cfg.Sink.Type {
		case "sqlite":
			sqlitePath = cfg.Sink.SQLitePath
		case "postgres":
			postgresDSN = cfg.Sink.PostgresDSN
		case "neo4j":
			neo4jURI = cfg.Sink.Neo4jURI
		}
	}

	if sqlitePath != "" {
		s, err := sqlitesink.Open(sqlitePath)
		if err != nil {
			return fmt.Errorf("open sqlite sink: %w", err)
		}
		defer s.Close()
		if err := s.WriteGraph(ctx, g); err != nil {
			return fmt.Errorf("write sqlite sink: %w", err)
		}
		logger.Infof("graph written to sqlite at %s", sqlitePath)
	}

	if postgresDSN != "" {
		s, err := pgsink.Open(ctx, postgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres sink: %w", err)
		}
		defer s.Close()
		if err := s.WriteGraph(ctx, g); err != nil {
			return fmt.Errorf("write postgres sink: %w", err)
		}
		logger.Info("graph written to postgres")
	}

	if neo4jURI != "" {
		s, err := neo4jsink.Open(ctx, neo4jURI, cfg.Sink.Neo4jUser, cfg.Sink.Neo4jPass, "neo4j")
		if err != nil {
			return fmt.Errorf("open neo4j sink: %w", err)
		}
		defer s.Close(ctx)
		if err := s.WriteGraph(ctx, g); err != nil {
			return fmt.Errorf("write neo4j sink: %w", err)
		}
		logger.Info("graph written to neo4j")
	}

	return nil
}
