// Package extract holds the per-language, line-oriented regex extractors
// that turn one source file's bytes into nodes and edges appended to a
// shared graph.Graph. Dispatch is a tagged switch over
// discovery.File.Language plus a basename check for .env and
// package.json — free functions sharing a common sink, not an interface
// hierarchy.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
)

// File extracts nodes and edges from f into g, selecting the extractor by
// f.Language and basename. Every extractor first adds a file:<path> node
// so the file itself is always addressable even when no pattern matches.
func File(f discovery.File, g *graph.Graph) {
	fileNodeID := "file:" + f.Path
	g.AddNode(graph.Node{
		ID:       fileNodeID,
		File:     f.Path,
		Name:     filepath.Base(f.Path),
		NodeType: graph.NodeFile,
		Language: f.Language,
	})

	base := filepath.Base(f.Path)
	switch {
	case base == "package.json":
		packageJSON(f, g, fileNodeID)
	case strings.HasPrefix(base, ".env"):
		dotenv(f, g, fileNodeID)
	case f.Language == graph.LangJS || f.Language == graph.LangTS:
		javascript(f, g, fileNodeID)
	case f.Language == graph.LangPython:
		python(f, g, fileNodeID)
	case f.Language == graph.LangCPP || f.Language == graph.LangArduino:
		cFamily(f, g, fileNodeID)
	}
}

// lines splits content on newlines, trimming trailing '\r' for CRLF
// source trees — the rest of each extractor works on already-trimmed
// lines with 1-based line numbers.
func lines(content []byte) []string {
	raw := strings.Split(string(content), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimRight(l, "\r")
	}
	return out
}
