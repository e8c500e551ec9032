package bridge

import (
	"sort"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

// normalizePath turns every parameter marker style (":name", "${...}",
// "{...}", "<...>") into the literal "{param}", strips a trailing
// slash, and lowercases the result. Static paths are unchanged apart
// from case.
func normalizePath(raw string) string {
	var b strings.Builder
	i := 0
	for i < len(raw) {
		switch {
		case raw[i] == ':':
			j := i + 1
			for j < len(raw) && isParamNameByte(raw[j]) {
				j++
			}
			b.WriteString("{param}")
			i = j
		case strings.HasPrefix(raw[i:], "${"):
			end := strings.Index(raw[i:], "}")
			if end == -1 {
				b.WriteByte(raw[i])
				i++
				continue
			}
			b.WriteString("{param}")
			i += end + 1
		case raw[i] == '{':
			end := strings.IndexByte(raw[i:], '}')
			if end == -1 {
				b.WriteByte(raw[i])
				i++
				continue
			}
			b.WriteString("{param}")
			i += end + 1
		case raw[i] == '<':
			end := strings.IndexByte(raw[i:], '>')
			if end == -1 {
				b.WriteByte(raw[i])
				i++
				continue
			}
			b.WriteString("{param}")
			i += end + 1
		default:
			b.WriteByte(raw[i])
			i++
		}
	}

	out := b.String()
	out = strings.TrimSuffix(out, "/")
	return strings.ToLower(out)
}

func isParamNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func detectHTTP(g *graph.Graph) {
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
		switch e.EdgeType {
		case graph.EdgeDefines:
			if n, ok := g.Nodes[e.Target]; ok && n.NodeType == graph.NodeEndpoint {
				path, _ := n.Metadata["path"].(string)
				key := normalizePath(path)
				note(key)
				producers[key] = append(producers[key], graph.Actor{
					File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "defines " + path,
				})
			}
		case graph.EdgeFetches:
			if !strings.HasPrefix(e.Target, "http:") {
				continue
			}
			parts := strings.SplitN(e.Target, ":", 3)
			if len(parts) != 3 {
				continue
			}
			rawPath := parts[2]
			key := normalizePath(rawPath)
			note(key)
			consumers[key] = append(consumers[key], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "calls " + rawPath,
			})
		}
	}

	sortedKeys := append([]string(nil), keyOrder...)
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		prod := producers[key]
		cons := consumers[key]

		// An endpoint defined but never called emits nothing: a bare
		// definition has no caller to pair it against.
		if len(cons) == 0 {
			continue
		}

		emitKey := key
		if len(prod) == 0 {
			emitKey = "UNMATCHED:" + key
		}

		g.AddBridge(graph.Bridge{
			BridgeType: graph.BridgeHTTP,
			Key:        emitKey,
			Producers:  prod,
			Consumers:  cons,
		})
	}
}
