package extract

import (
	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
)

// serialNodeID is the singleton synthetic node every serial read/write
// edge attaches to (canonical prefix "serial:connection").
const serialNodeID = "serial:connection"

func addEnvUse(f discovery.File, g *graph.Graph, fileNodeID, name string, lineNo int) {
	id := "env:" + name
	g.AddNode(graph.Node{ID: id, Name: name, NodeType: graph.NodeVariable, Language: graph.LangConfig, Line: lineNo})
	g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeEnvUses, File: f.Path, Line: lineNo})
}

func addEnvDefine(f discovery.File, g *graph.Graph, fileNodeID, name string, lineNo int) {
	id := "env:" + name
	g.AddNode(graph.Node{ID: id, Name: name, NodeType: graph.NodeVariable, Language: graph.LangConfig, Line: lineNo})
	g.AddEdge(graph.Edge{Source: fileNodeID, Target: id, EdgeType: graph.EdgeEnvDefines, File: f.Path, Line: lineNo})
}

func addSerialWrite(f discovery.File, g *graph.Graph, fileNodeID string, lineNo int) {
	g.AddNode(graph.Node{ID: serialNodeID, Name: "serial", NodeType: graph.NodeEvent, Language: f.Language})
	g.AddEdge(graph.Edge{Source: fileNodeID, Target: serialNodeID, EdgeType: graph.EdgeSerialWrite, File: f.Path, Line: lineNo})
}

func addSerialRead(f discovery.File, g *graph.Graph, fileNodeID string, lineNo int) {
	g.AddNode(graph.Node{ID: serialNodeID, Name: "serial", NodeType: graph.NodeEvent, Language: f.Language})
	g.AddEdge(graph.Edge{Source: serialNodeID, Target: fileNodeID, EdgeType: graph.EdgeSerialRead, File: f.Path, Line: lineNo})
}
