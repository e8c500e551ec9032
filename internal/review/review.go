// Package review builds the review-cluster export: file clusters
// enriched with a dominant language and the bridge types that touch
// them, a bridge-type -> file-list index, and the list of orphan files
// that belong to no cluster.
package review

import (
	"sort"

	"github.com/google/uuid"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

// Cluster is one file cluster annotated for human review.
type Cluster struct {
	ID               string   `json:"id"`
	Files            []string `json:"files"`
	DominantLanguage string   `json:"dominant_language"`
	Bridges          []string `json:"bridges"`
	Size             int      `json:"size"`
}

// Export is the full review-cluster document.
type Export struct {
	Clusters     []Cluster           `json:"clusters"`
	BridgeGroups map[string][]string `json:"bridge_groups"`
	Orphans      []string            `json:"orphans"`
}

// Build computes the review export for g's file clusters of at least
// minSize files.
func Build(g *graph.Graph, minSize int) Export {
	clusters := g.FileClusters(minSize)

	languageCounts := make(map[string]map[string]int) // file -> language -> count
	for _, n := range g.Nodes {
		if n.File == "" || n.Language == "" {
			continue
		}
		if languageCounts[n.File] == nil {
			languageCounts[n.File] = make(map[string]int)
		}
		languageCounts[n.File][string(n.Language)]++
	}

	fileToBridgeTypes := make(map[string]map[string]bool)
	for _, b := range g.Bridges {
		for _, a := range append(append([]graph.Actor(nil), b.Producers...), b.Consumers...) {
			if fileToBridgeTypes[a.File] == nil {
				fileToBridgeTypes[a.File] = make(map[string]bool)
			}
			fileToBridgeTypes[a.File][string(b.BridgeType)] = true
		}
	}

	bridgeGroups := make(map[string]map[string]bool)
	for _, b := range g.Bridges {
		if bridgeGroups[string(b.BridgeType)] == nil {
			bridgeGroups[string(b.BridgeType)] = make(map[string]bool)
		}
		for _, a := range append(append([]graph.Actor(nil), b.Producers...), b.Consumers...) {
			bridgeGroups[string(b.BridgeType)][a.File] = true
		}
	}

	exported := make([]Cluster, 0, len(clusters))
	clustered := make(map[string]bool)
	for _, c := range clusters {
		langTotals := make(map[string]int)
		bridgeTypes := make(map[string]bool)
		for _, f := range c.Files {
			clustered[f] = true
			for lang, n := range languageCounts[f] {
				langTotals[lang] += n
			}
			for bt := range fileToBridgeTypes[f] {
				bridgeTypes[bt] = true
			}
		}

		exported = append(exported, Cluster{
			ID:               uuid.NewString(),
			Files:            c.Files,
			DominantLanguage: dominant(langTotals),
			Bridges:          sortedSet(bridgeTypes),
			Size:             len(c.Files),
		})
	}

	var orphans []string
	for _, n := range g.Nodes {
		if n.NodeType == graph.NodeFile && !clustered[n.File] {
			orphans = append(orphans, n.File)
		}
	}
	sort.Strings(orphans)

	out := Export{
		Clusters:     exported,
		BridgeGroups: make(map[string][]string),
		Orphans:      orphans,
	}
	for bt, files := range bridgeGroups {
		out.BridgeGroups[bt] = sortedSet(files)
	}

	return out
}

// dominant returns the language with the highest node count, breaking
// ties by lexicographically smallest name for a deterministic result.
func dominant(counts map[string]int) string {
	best := ""
	bestCount := -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
