// Package scan wires discovery, extraction, the incremental cache, and
// bridge detection into the single pipeline every entrypoint that needs
// a fresh Graph (scan, serve, watch) calls into.
package scan

import (
	"fmt"

	"github.com/codegraph-dev/codegraph/internal/bridge"
	"github.com/codegraph-dev/codegraph/internal/cache"
	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/extract"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/obslog"
)

// Options configures one Run call.
type Options struct {
	Root        string
	CacheStore  *cache.Store // nil disables incremental caching
}

// Run walks root, extracts every accepted file into a fresh Graph, and
// runs bridge detection over the result. When opts.CacheStore is set,
// a file whose content hash matches its last recorded scan skips
// re-extraction entirely: its previously recorded nodes/edges are
// re-inserted from the cache instead of re-running the extractor.
func Run(opts Options) (*graph.Graph, error) {
	files, err := discovery.Walk(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", opts.Root, err)
	}

	g := graph.New()
	skipped := 0
	for _, f := range files {
		if opts.CacheStore != nil && reuseFromCache(opts.CacheStore, f, g) {
			skipped++
			continue
		}
		extractAndCache(opts.CacheStore, f, g)
	}

	bridge.Detect(g)
	obslog.Debug("scan complete", "files", len(files), "cached", skipped, "nodes", len(g.Nodes), "edges", len(g.Edges), "bridges", len(g.Bridges))
	return g, nil
}

// reuseFromCache re-inserts store's recorded nodes/edges for f into g
// without invoking an extractor, reporting whether it found a hash
// match worth reusing.
func reuseFromCache(store *cache.Store, f discovery.File, g *graph.Graph) bool {
	hash := cache.HashContent(f.Content)
	entry, hit, err := store.Lookup(f.Path, hash)
	if err != nil {
		obslog.Warn("cache lookup failed", "file", f.Path, "error", err)
		return false
	}
	if !hit {
		return false
	}
	for _, n := range entry.Nodes {
		g.AddNode(n)
	}
	for _, e := range entry.Edges {
		g.AddEdge(e)
	}
	obslog.Debug("file unchanged since last scan, reused cached extraction", "file", f.Path)
	return true
}

// extractAndCache runs the extractor for f into a private graph (so its
// output stays addressable as the exact set to replay on a future cache
// hit), merges that output into g, and records it in store when present.
func extractAndCache(store *cache.Store, f discovery.File, g *graph.Graph) {
	scoped := graph.New()
	extract.File(f, scoped)

	nodes := make([]graph.Node, 0, len(scoped.Nodes))
	for _, n := range scoped.Nodes {
		nodes = append(nodes, *n)
		g.AddNode(*n)
	}
	for _, e := range scoped.Edges {
		g.AddEdge(e)
	}

	if store == nil {
		return
	}
	entry := cache.Entry{
		ContentHash: cache.HashContent(f.Content),
		NodeCount:   len(nodes),
		EdgeCount:   len(scoped.Edges),
		Nodes:       nodes,
		Edges:       scoped.Edges,
	}
	if err := store.Put(f.Path, entry); err != nil {
		obslog.Warn("cache write failed", "file", f.Path, "error", err)
	}
}
