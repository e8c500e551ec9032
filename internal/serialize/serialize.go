// Package serialize renders a graph.Graph (or a subgraph view of one)
// into the JSON document consumed by downstream tooling and by the
// review-cluster export.
package serialize

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

// nodeDoc mirrors graph.Node but with its own omitempty rules: line and
// metadata vanish when zero/empty, matching the JSON form.
type nodeDoc struct {
	ID       string          `json:"id"`
	File     string          `json:"file,omitempty"`
	Name     string          `json:"name"`
	NodeType graph.NodeType  `json:"node_type"`
	Language graph.Language  `json:"language"`
	Line     int             `json:"line,omitempty"`
	Metadata graph.Metadata  `json:"metadata,omitempty"`
}

// edgeDoc mirrors graph.Edge, omitting line, file, and metadata when unset.
type edgeDoc struct {
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	EdgeType graph.EdgeType `json:"edge_type"`
	File     string         `json:"file,omitempty"`
	Line     int            `json:"line,omitempty"`
	Metadata graph.Metadata `json:"metadata,omitempty"`
}

// Document is the full JSON graph document: a stats summary plus the
// node map, edge list, and bridge list.
type Document struct {
	Stats   graph.Stats        `json:"stats"`
	Nodes   map[string]nodeDoc `json:"nodes"`
	Edges   []edgeDoc          `json:"edges"`
	Bridges []graph.Bridge     `json:"bridges"`
}

// Build converts g into its JSON document form. ids restricts the node
// set (and, by extension, the edges whose endpoints both survive) to a
// subgraph view; pass nil for the full graph.
func Build(g *graph.Graph, ids map[string]bool) Document {
	doc := Document{
		Stats: g.Stats(),
		Nodes: make(map[string]nodeDoc),
	}

	for id, n := range g.Nodes {
		if ids != nil && !ids[id] {
			continue
		}
		doc.Nodes[id] = nodeDoc{
			ID: n.ID, File: n.File, Name: n.Name, NodeType: n.NodeType,
			Language: n.Language, Line: n.Line, Metadata: n.Metadata,
		}
	}

	for _, e := range g.Edges {
		if ids != nil && (!ids[e.Source] || !ids[e.Target]) {
			continue
		}
		doc.Edges = append(doc.Edges, edgeDoc{
			Source: e.Source, Target: e.Target, EdgeType: e.EdgeType,
			File: e.File, Line: e.Line, Metadata: e.Metadata,
		})
	}

	for _, b := range g.Bridges {
		if ids != nil && !bridgeTouches(b, ids) {
			continue
		}
		doc.Bridges = append(doc.Bridges, b)
	}

	if ids != nil {
		doc.Stats = subgraphStats(doc)
	}

	return doc
}

func bridgeTouches(b graph.Bridge, ids map[string]bool) bool {
	for _, a := range b.Producers {
		if ids["file:"+a.File] {
			return true
		}
	}
	for _, a := range b.Consumers {
		if ids["file:"+a.File] {
			return true
		}
	}
	return false
}

func subgraphStats(doc Document) graph.Stats {
	files := make(map[string]bool)
	languages := make(map[string]bool)
	for _, n := range doc.Nodes {
		if n.File != "" {
			files[n.File] = true
		}
		if n.Language != "" {
			languages[string(n.Language)] = true
		}
	}

	langList := make([]string, 0, len(languages))
	for l := range languages {
		langList = append(langList, l)
	}
	sort.Strings(langList)

	edgeCounts := make(map[string]int)
	for _, e := range doc.Edges {
		edgeCounts[string(e.EdgeType)]++
	}
	bridgeCounts := make(map[string]int)
	for _, b := range doc.Bridges {
		bridgeCounts[string(b.BridgeType)]++
	}

	return graph.Stats{
		NodeCount:   len(doc.Nodes),
		EdgeCount:   len(doc.Edges),
		BridgeCount: len(doc.Bridges),
		FileCount:   len(files),
		Languages:   langList,
		EdgeTypes:   countedDesc(edgeCounts),
		BridgeTypes: countedDesc(bridgeCounts),
	}
}

func countedDesc(counts map[string]int) []graph.CountedKey {
	out := make([]graph.CountedKey, 0, len(counts))
	for k, c := range counts {
		out = append(out, graph.CountedKey{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Write encodes doc as indented JSON to w.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
