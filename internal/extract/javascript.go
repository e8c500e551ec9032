package extract

import (
	"regexp"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/resolve"
)

func javascript(f discovery.File, g *graph.Graph, fileNodeID string) {
	for i, raw := range lines(f.Content) {
		line := strings.TrimSpace(raw)
		lineNo := i + 1
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		extractJSImports(line, lineNo, f, g, fileNodeID)
		extractJSExports(line, lineNo, f, g, fileNodeID)
		extractJSHTTP(line, lineNo, f, g, fileNodeID)
		extractJSRealtime(line, lineNo, f, g, fileNodeID)
		extractJSEnv(line, lineNo, f, g, fileNodeID)
	}
}

func extractJSImports(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	var spec string
	switch {
	case jsImportFrom.MatchString(line):
		spec = jsImportFrom.FindStringSubmatch(line)[1]
	case jsImportBare.MatchString(line):
		spec = jsImportBare.FindStringSubmatch(line)[1]
	case jsRequire.MatchString(line):
		spec = jsRequire.FindStringSubmatch(line)[1]
	case jsDynamicImport.MatchString(line):
		spec = jsDynamicImport.FindStringSubmatch(line)[1]
	default:
		return
	}

	target := "file:" + resolve.JS(f.Path, spec)
	g.AddEdge(graph.Edge{
		Source:   fileNodeID,
		Target:   target,
		EdgeType: graph.EdgeImports,
		File:     f.Path,
		Line:     lineNo,
		Metadata: graph.Metadata{"raw": spec},
	})
}

func extractJSExports(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := jsExportDecl.FindStringSubmatch(line); m != nil {
		addJSExport(f, g, fileNodeID, m[1], lineNo)
	}
	if m := jsExportBraces.FindStringSubmatch(line); m != nil {
		for _, item := range strings.Split(m[1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			name := item
			if parts := strings.Split(item, " as "); len(parts) == 2 {
				name = strings.TrimSpace(parts[1])
			}
			addJSExport(f, g, fileNodeID, name, lineNo)
		}
	}
}

func addJSExport(f discovery.File, g *graph.Graph, fileNodeID, name string, lineNo int) {
	id := "export:" + f.Path + ":" + name
	g.AddNode(graph.Node{
		ID:       id,
		File:     f.Path,
		Name:     name,
		NodeType: graph.NodeFunction,
		Language: f.Language,
		Line:     lineNo,
	})
	g.AddEdge(graph.Edge{
		Source:   fileNodeID,
		Target:   id,
		EdgeType: graph.EdgeExports,
		File:     f.Path,
		Line:     lineNo,
	})
}

func extractJSHTTP(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := jsHTTPRoute.FindStringSubmatch(line); m != nil {
		method := strings.ToUpper(m[1])
		path := m[2]
		id := "http:" + method + ":" + path
		g.AddNode(graph.Node{
			ID:       id,
			File:     f.Path,
			Name:     path,
			NodeType: graph.NodeEndpoint,
			Language: f.Language,
			Line:     lineNo,
			Metadata: graph.Metadata{"method": method, "path": path},
		})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeDefines, File: f.Path, Line: lineNo})
	}

	if m := jsFetch.FindStringSubmatch(line); m != nil {
		target := "http:GET:" + m[1]
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: target, EdgeType: graph.EdgeFetches, File: f.Path, Line: lineNo})
	}
	if m := jsAxiosCall.FindStringSubmatch(line); m != nil {
		method := strings.ToUpper(m[1])
		target := "http:" + method + ":" + m[2]
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: target, EdgeType: graph.EdgeFetches, File: f.Path, Line: lineNo})
	}
}

func extractJSRealtime(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := jsWSEmit.FindStringSubmatch(line); m != nil {
		id := "ws:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeEvent, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeEmits, File: f.Path, Line: lineNo})
	}
	if m := jsWSOn.FindStringSubmatch(line); m != nil {
		id := "ws:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeEvent, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: id, Target: fileNodeID, EdgeType: graph.EdgeSubscribes, File: f.Path, Line: lineNo})
	}

	if m := jsMQTTPublish.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgePublishes, File: f.Path, Line: lineNo})
	}
	if m := jsMQTTSubscribe.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: id, Target: fileNodeID, EdgeType: graph.EdgeSubscribes, File: f.Path, Line: lineNo})
	}
}

func extractJSEnv(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	for _, re := range []*regexp.Regexp{jsEnvDot, jsEnvBracket, jsEnvMeta} {
		if m := re.FindStringSubmatch(line); m != nil {
			addEnvUse(f, g, fileNodeID, m[1], lineNo)
		}
	}
}
