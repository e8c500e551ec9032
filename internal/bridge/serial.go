package bridge

import "github.com/codegraph-dev/codegraph/internal/graph"

const serialKey = "serial"

// detectSerial gathers every serial_write edge as a producer and every
// serial_read edge as a consumer, all under the single key "serial".
// It emits a bridge iff both lists are non-empty — serial connections
// routinely pair a write and a read within the same file, so no
// multi-file requirement applies here.
func detectSerial(g *graph.Graph) {
	var producers, consumers []graph.Actor

	for _, e := range g.Edges {
		switch e.EdgeType {
		case graph.EdgeSerialWrite:
			producers = append(producers, graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "write",
			})
		case graph.EdgeSerialRead:
			consumers = append(consumers, graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "read",
			})
		}
	}

	if len(producers) == 0 || len(consumers) == 0 {
		return
	}

	g.AddBridge(graph.Bridge{
		BridgeType: graph.BridgeSerial,
		Key:        serialKey,
		Producers:  producers,
		Consumers:  consumers,
	})
}
