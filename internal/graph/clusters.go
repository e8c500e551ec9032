package graph

import "sort"

// FileCluster is a connected component of the graph's undirected
// projection, expressed as the set of distinct source files its member
// nodes belong to.
type FileCluster struct {
	Files []string
}

// FileClusters computes connected components over all nodes (treating
// every edge as undirected), collects the distinct file set of each
// component, discards components with fewer than minSize files, and
// returns the remainder largest-first. Clusters are deduplicated: once a
// file has appeared in an earlier (larger) cluster it is subtracted from
// every later one, and a cluster that drops below minSize after
// subtraction is discarded.
func (g *Graph) FileClusters(minSize int) []FileCluster {
	visited := make(map[string]bool)
	var rawFileSets []map[string]bool

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if visited[id] {
			continue
		}
		files := make(map[string]bool)
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if n, ok := g.Nodes[cur]; ok && n.File != "" {
				files[n.File] = true
			}
			for _, other := range g.Neighbors(cur, Both) {
				if !visited[other] {
					visited[other] = true
					queue = append(queue, other)
				}
			}
		}
		if len(files) > 0 {
			rawFileSets = append(rawFileSets, files)
		}
	}

	sort.Slice(rawFileSets, func(i, j int) bool {
		return len(rawFileSets[i]) > len(rawFileSets[j])
	})

	seen := make(map[string]bool)
	var out []FileCluster
	for _, set := range rawFileSets {
		var remaining []string
		for f := range set {
			if !seen[f] {
				remaining = append(remaining, f)
			}
		}
		if len(remaining) < minSize {
			continue
		}
		for _, f := range remaining {
			seen[f] = true
		}
		sort.Strings(remaining)
		out = append(out, FileCluster{Files: remaining})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Files) > len(out[j].Files)
	})

	return out
}
