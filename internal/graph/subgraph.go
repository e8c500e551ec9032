package graph

import "strings"

// DefaultSubgraphDepth is the max BFS depth used when the caller does not
// specify one.
const DefaultSubgraphDepth = 10

// resolveStart disambiguates a possibly-partial start id into an exact node
// id, following substring/suffix/segment/lexicographic disambiguation.
// Returns "" if nothing in the graph matches.
func (g *Graph) resolveStart(want string) string {
	if _, ok := g.Nodes[want]; ok {
		return want
	}

	var candidates []string
	for id := range g.Nodes {
		if strings.Contains(id, want) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	var preferred []string
	for _, id := range candidates {
		if strings.HasSuffix(id, want) {
			preferred = append(preferred, id)
			continue
		}
		segs := strings.Split(id, ":")
		if segs[len(segs)-1] == want {
			preferred = append(preferred, id)
		}
	}
	pool := candidates
	if len(preferred) > 0 {
		pool = preferred
	}

	best := pool[0]
	for _, id := range pool[1:] {
		if id < best {
			best = id
		}
	}
	return best
}

// Subgraph extracts a BFS-bounded projection of g rooted at start (which
// may be a partial id, see resolveStart). Traversal follows both forward
// and reverse edges at each step; a node is visited once, at the depth it
// was first reached, and traversal stops enqueuing once depth exceeds
// maxDepth. Every traversed edge is copied in once, even when it is
// reached from both of its endpoints; bridges that touch any file
// present in the resulting node set are copied in last.
//
// If start does not resolve to any node, Subgraph returns an empty graph
// rather than an error.
func (g *Graph) Subgraph(start string, maxDepth int) *Graph {
	if maxDepth <= 0 {
		maxDepth = DefaultSubgraphDepth
	}
	out := New()

	id := g.resolveStart(start)
	if id == "" {
		return out
	}

	depth := map[string]int{id: 0}
	queue := []string{id}
	copied := make(map[int]bool) // edge indexes already copied into out
	if n, ok := g.Nodes[id]; ok {
		out.AddNode(*n)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := depth[cur]
		if d >= maxDepth {
			continue
		}

		for _, idx := range g.forward[cur] {
			e := g.Edges[idx]
			if !copied[idx] {
				copied[idx] = true
				out.AddEdge(e)
			}
			if n, ok := g.Nodes[e.Target]; ok {
				out.AddNode(*n)
			}
			if _, seen := depth[e.Target]; !seen {
				depth[e.Target] = d + 1
				if d+1 <= maxDepth {
					queue = append(queue, e.Target)
				}
			}
		}
		for _, idx := range g.reverse[cur] {
			e := g.Edges[idx]
			if !copied[idx] {
				copied[idx] = true
				out.AddEdge(e)
			}
			if n, ok := g.Nodes[e.Source]; ok {
				out.AddNode(*n)
			}
			if _, seen := depth[e.Source]; !seen {
				depth[e.Source] = d + 1
				if d+1 <= maxDepth {
					queue = append(queue, e.Source)
				}
			}
		}
	}

	subFiles := make(map[string]bool)
	for _, n := range out.Nodes {
		if n.File != "" {
			subFiles[n.File] = true
		}
	}
	for _, b := range g.Bridges {
		if bridgeTouchesFiles(b, subFiles) {
			out.AddBridge(b)
		}
	}

	return out
}

func bridgeTouchesFiles(b Bridge, files map[string]bool) bool {
	for _, a := range b.Producers {
		if files[a.File] {
			return true
		}
	}
	for _, a := range b.Consumers {
		if files[a.File] {
			return true
		}
	}
	return false
}
