// Package bridge implements the cross-language correlation pass: it
// runs once after every file has been extracted, reads the edges
// already recorded in a graph.Graph, and appends Bridge
// records correlating producers and consumers of the same MQTT topic,
// HTTP path, WebSocket event, serial channel, or environment variable —
// including the "broken connection" cases where a consumer has no
// producer at all.
package bridge

import "github.com/codegraph-dev/codegraph/internal/graph"

// Detect builds all five bridge tables from g's recorded edges and
// appends the resulting Bridge records to g. It never fails: the
// detector only reads edges that extraction already validated.
func Detect(g *graph.Graph) {
	detectMQTT(g)
	detectHTTP(g)
	detectWebSocket(g)
	detectSerial(g)
	detectEnv(g)
}
