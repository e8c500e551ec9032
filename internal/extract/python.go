package extract

import (
	"strings"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/resolve"
)

func python(f discovery.File, g *graph.Graph, fileNodeID string) {
	for i, raw := range lines(f.Content) {
		line := strings.TrimSpace(raw)
		lineNo := i + 1
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		extractPyImports(line, lineNo, f, g, fileNodeID)
		extractPyDefs(line, lineNo, f, g, fileNodeID)
		extractPyRealtime(line, lineNo, f, g, fileNodeID)
		extractPySerial(line, lineNo, f, g, fileNodeID)
		extractPyHTTP(line, lineNo, f, g, fileNodeID)
		extractPyEnv(line, lineNo, f, g, fileNodeID)
	}
}

func extractPyImports(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := pyFromImport.FindStringSubmatch(line); m != nil {
		level := len(m[1])
		target := "file:" + resolve.Python(f.Path, level, m[2])
		g.AddEdge(graph.Edge{
			Source: fileNodeID, Target: target, EdgeType: graph.EdgeImports,
			File: f.Path, Line: lineNo, Metadata: graph.Metadata{"raw": m[1] + m[2]},
		})
		return
	}
	if m := pyImport.FindStringSubmatch(line); m != nil {
		module := m[1]
		if idx := strings.Index(module, ","); idx >= 0 {
			module = module[:idx]
		}
		target := "file:" + resolve.Python(f.Path, 0, module)
		g.AddEdge(graph.Edge{
			Source: fileNodeID, Target: target, EdgeType: graph.EdgeImports,
			File: f.Path, Line: lineNo, Metadata: graph.Metadata{"raw": module},
		})
	}
}

func extractPyDefs(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := pyDef.FindStringSubmatch(line); m != nil {
		id := "func:" + f.Path + ":" + m[1]
		g.AddNode(graph.Node{ID: id, File: f.Path, Name: m[1], NodeType: graph.NodeFunction, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeDefines, File: f.Path, Line: lineNo})
		return
	}
	if m := pyClass.FindStringSubmatch(line); m != nil {
		id := "class:" + f.Path + ":" + m[1]
		g.AddNode(graph.Node{ID: id, File: f.Path, Name: m[1], NodeType: graph.NodeClass, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeDefines, File: f.Path, Line: lineNo})
	}
}

func extractPyRealtime(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := pyMQTTPublish.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgePublishes, File: f.Path, Line: lineNo})
	}
	if m := pyMQTTSubscribe.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: id, Target: fileNodeID, EdgeType: graph.EdgeSubscribes, File: f.Path, Line: lineNo})
	}
	if m := pyMessageCallback.FindStringSubmatch(line); m != nil {
		id := "mqtt:" + m[1]
		g.AddNode(graph.Node{ID: id, Name: m[1], NodeType: graph.NodeTopic, Language: f.Language, Line: lineNo})
		g.AddEdge(graph.Edge{Source: id, Target: fileNodeID, EdgeType: graph.EdgeSubscribes, File: f.Path, Line: lineNo})
	}
}

func extractPySerial(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if pySerialRead.MatchString(line) {
		addSerialRead(f, g, fileNodeID, lineNo)
	}
	if pySerialWrite.MatchString(line) {
		addSerialWrite(f, g, fileNodeID, lineNo)
	}
}

func extractPyHTTP(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := pyRequests.FindStringSubmatch(line); m != nil {
		method := strings.ToUpper(m[1])
		target := "http:" + method + ":" + m[2]
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: target, EdgeType: graph.EdgeFetches, File: f.Path, Line: lineNo})
	}
	if m := pyRoute.FindStringSubmatch(line); m != nil {
		path := m[1]
		id := "http:GET:" + path
		g.AddNode(graph.Node{
			ID: id, File: f.Path, Name: path, NodeType: graph.NodeEndpoint, Language: f.Language, Line: lineNo,
			Metadata: graph.Metadata{"method": "GET", "path": path},
		})
		g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeDefines, File: f.Path, Line: lineNo})
	}
}

func extractPyEnv(line string, lineNo int, f discovery.File, g *graph.Graph, fileNodeID string) {
	if m := pyEnvBracket.FindStringSubmatch(line); m != nil {
		addEnvUse(f, g, fileNodeID, m[1], lineNo)
	}
	if m := pyEnvGetAttr.FindStringSubmatch(line); m != nil {
		addEnvUse(f, g, fileNodeID, m[1], lineNo)
	}
	if m := pyEnvGetenv.FindStringSubmatch(line); m != nil {
		addEnvUse(f, g, fileNodeID, m[1], lineNo)
	}
}
