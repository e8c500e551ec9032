package extract

import (
	"strings"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/resolve"
)

func cFamily(f discovery.File, g *graph.Graph, fileNodeID string) {
	for i, raw := range lines(f.Content) {
		line := strings.TrimSpace(raw)
		lineNo := i + 1
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		extractCIncludes(line, lineNo, f, g, fileNodeID)
		extractCFunctions(line, lineNo, f, g, fileNodeID)
		extractCRealtime(line, lineNo, f, g, fileNodeID)
		extractCSerial(line, lineNo, f, g, fileNodeID)
		extractCHTTP(line, lineNo, f, g, fileNodeID)
	}
}

func extractCIncludes(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := cIncludeLocal.FindStringSubmatch(line); m != nil {
		target := "file:" + resolve.CInclude(f.Path, m[1])
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: target, EdgeType: graph.EdgeIncludes, File: f.Path, Line: lineNo})
		return
	}
	if m := cIncludeSystem.FindStringSubmatch(line); m != nil {
		id := "lib:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeFile, Language: f.Language})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeIncludes, File: f.Path, Line: lineNo})
	}
}

func extractCFunctions(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	m := cReturnType.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := m[2]
	if cControlFlowKeywords[name] {
		return
	}
	id := "func:" + f.Path + ":" + name
	g.AddNode(graph.Node{ID: id, File: f.Path, Name: name, NodeType: graph.NodeFunction, Language: f.Language, Line: lineNo})
	g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeDefines, File: f.Path, Line: lineNo})
}

func extractCRealtime(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := cMQTTPublish.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgePublishes, File: f.Path, Line: lineNo})
	}
	if m := cMQTTSubscribe.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: id, Target: fileNodeID, EdgeType: graph.EdgeSubscribes, File: f.Path, Line: lineNo})
	}
}

func extractCSerial(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if cSerialWrite.MatchString(line) {
		addSerialWrite(f, g, fileNodeID, lineNo)
	}
	if cSerialRead.MatchString(line) {
		addSerialRead(f, g, fileNodeID, lineNo)
	}
}

func extractCHTTP(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := cHTTPBegin.FindStringSubmatch(line); m != nil {
		target := "http:GET:" + m[1]
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: target, EdgeType: graph.EdgeFetches, File: f.Path, Line: lineNo})
	}
}
