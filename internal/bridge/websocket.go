package bridge

import (
	"sort"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

const wsPrefix = "ws:"

func detectWebSocket(g *graph.Graph) {
	producers := make(map[string][]graph.Actor)
	consumers := make(map[string][]graph.Actor)
	keyOrder := []string{}
	seen := make(map[string]bool)

	note := func(key string) {
		if !seen[key] {
			seen[key] = true
			keyOrder = append(keyOrder, key)
		}
	}

	for _, e := range g.Edges {
		switch {
		case e.EdgeType == graph.EdgeEmits && strings.HasPrefix(e.Target, wsPrefix):
			event := strings.TrimPrefix(e.Target, wsPrefix)
			note(event)
			producers[event] = append(producers[event], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "emit",
			})
		case e.EdgeType == graph.EdgeSubscribes && strings.HasPrefix(e.Source, wsPrefix):
			event := strings.TrimPrefix(e.Source, wsPrefix)
			note(event)
			consumers[event] = append(consumers[event], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "listen",
			})
		}
	}

	sortedKeys := append([]string(nil), keyOrder...)
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		combined := append(append([]graph.Actor(nil), producers[key]...), consumers[key]...)
		if !spansFiles(combined, 2) {
			continue
		}
		g.AddBridge(graph.Bridge{
			BridgeType: graph.BridgeWebSocket,
			Key:        key,
			Producers:  producers[key],
			Consumers:  consumers[key],
		})
	}
}

func spansFiles(actors []graph.Actor, min int) bool {
	files := make(map[string]bool)
	for _, a := range actors {
		files[a.File] = true
	}
	return len(files) >= min
}
