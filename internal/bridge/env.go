package bridge

import (
	"sort"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

const envPrefix = "env:"

func detectEnv(g *graph.Graph) {
	definers := make(map[string][]graph.Actor)
	users := make(map[string][]graph.Actor)
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
		case e.EdgeType == graph.EdgeEnvDefines && strings.HasPrefix(e.Target, envPrefix):
			name := strings.TrimPrefix(e.Target, envPrefix)
			note(name)
			definers[name] = append(definers[name], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "define",
			})
		case e.EdgeType == graph.EdgeEnvUses && strings.HasPrefix(e.Target, envPrefix):
			name := strings.TrimPrefix(e.Target, envPrefix)
			note(name)
			users[name] = append(users[name], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "use",
			})
		}
	}

	sortedKeys := append([]string(nil), keyOrder...)
	sort.Strings(sortedKeys)

	for _, name := range sortedKeys {
		defs := definers[name]
		use := users[name]

		if len(use) > 0 && len(defs) == 0 {
			g.AddBridge(graph.Bridge{
				BridgeType: graph.BridgeEnv,
				Key:        "UNDEFINED:" + name,
				Producers:  nil,
				Consumers:  use,
			})
			continue
		}

		combined := append(append([]graph.Actor(nil), defs...), use...)
		if !spansFiles(combined, 2) {
			continue
		}
		g.AddBridge(graph.Bridge{
			BridgeType: graph.BridgeEnv,
			Key:        name,
			Producers:  defs,
			Consumers:  use,
		})
	}
}
