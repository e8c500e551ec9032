package extract

import (
	"encoding/json"
	"sort"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/obslog"
)

type packageJSONDoc struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// packageJSON parses package.json tolerantly: a parse failure skips the
// dependency/script metadata but the file node created by File still
// stands.
func packageJSON(f discovery.File, g *graph.Graph, fileNodeID string) {
	var doc packageJSONDoc
	if err := json.Unmarshal(f.Content, &doc); err != nil {
		obslog.Debug("package.json parse failed", "path", f.Path, "error", err)
		return
	}

	addDeps(f, g, fileNodeID, doc.Dependencies, "dependencies")
	addDeps(f, g, fileNodeID, doc.DevDependencies, "devDependencies")

	for _, name := range sortedKeys(doc.Scripts) {
		id := "script:" + f.Path + ":" + name
		g.AddNode(graph.Node{ID: id, File: f.Path, Name: name, NodeType: graph.NodeFunction, Language: graph.LangConfig})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeDefines, File: f.Path})
	}
}

func addDeps(f discovery.File, g *graph.Graph, fileNodeID string, deps map[string]string, section string) {
	for _, name := range sortedKeys(deps) {
		id := "pkg:" + name
		g.AddNode(graph.Node{ID: id, Name: name, NodeType: graph.NodeFile, Language: graph.LangConfig})
		g.AddEdge(graph.Edge{
			Source: fileNodeID, Target: id, EdgeType: graph.EdgeImports,
			File: f.Path, Metadata: graph.Metadata{"section": section},
		})
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
