package bridge

import (
	"sort"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

const mqttPrefix = "mqtt:"

// matchTopic implements MQTT wildcard matching: '#' matches zero or
// more remaining segments (and may only sensibly appear last), '+'
// matches exactly one segment, anything else must compare equal.
// pattern and topic must otherwise have equal segment counts.
func matchTopic(pattern, topic string) bool {
	pSegs := strings.Split(pattern, "/")
	tSegs := strings.Split(topic, "/")

	for i, p := range pSegs {
		if p == "#" {
			return true
		}
		if i >= len(tSegs) {
			return false
		}
		if p == "+" {
			continue
		}
		if p != tSegs[i] {
			return false
		}
	}
	return len(pSegs) == len(tSegs)
}

func fileLanguage(g *graph.Graph, file string) graph.Language {
	if n, ok := g.Nodes["file:"+file]; ok {
		return n.Language
	}
	return ""
}

func detectMQTT(g *graph.Graph) {
	producers := make(map[string][]graph.Actor)
	consumers := make(map[string][]graph.Actor)
	topicOrder := []string{}
	seenTopic := make(map[string]bool)

	noteTopic := func(topic string) {
		if !seenTopic[topic] {
			seenTopic[topic] = true
			topicOrder = append(topicOrder, topic)
		}
	}

	for _, e := range g.Edges {
		switch {
		case e.EdgeType == graph.EdgePublishes && strings.HasPrefix(e.Target, mqttPrefix):
			topic := strings.TrimPrefix(e.Target, mqttPrefix)
			noteTopic(topic)
			producers[topic] = append(producers[topic], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "publish",
			})
		case e.EdgeType == graph.EdgeSubscribes && strings.HasPrefix(e.Source, mqttPrefix):
			topic := strings.TrimPrefix(e.Source, mqttPrefix)
			noteTopic(topic)
			consumers[topic] = append(consumers[topic], graph.Actor{
				File: e.File, Line: e.Line, Language: fileLanguage(g, e.File), Action: "subscribe",
			})
		}
	}

	sortedTopics := append([]string(nil), topicOrder...)
	sort.Strings(sortedTopics)

	for _, topic := range sortedTopics {
		combinedConsumers := append([]graph.Actor(nil), consumers[topic]...)
		for _, pattern := range sortedTopics {
			if pattern == topic {
				continue
			}
			if !strings.ContainsAny(pattern, "#+") {
				continue
			}
			if matchTopic(pattern, topic) {
				combinedConsumers = append(combinedConsumers, consumers[pattern]...)
			}
		}

		combined := append(append([]graph.Actor(nil), producers[topic]...), combinedConsumers...)
		if !spansMultiple(combined) {
			continue
		}

		g.AddBridge(graph.Bridge{
			BridgeType: graph.BridgeMQTT,
			Key:        topic,
			Producers:  producers[topic],
			Consumers:  combinedConsumers,
		})
	}
}

// spansMultiple reports whether actors collectively touch >=2 distinct
// files or >=2 distinct languages.
func spansMultiple(actors []graph.Actor) bool {
	files := make(map[string]bool)
	langs := make(map[graph.Language]bool)
	for _, a := range actors {
		files[a.File] = true
		langs[a.Language] = true
	}
	return len(files) >= 2 || len(langs) >= 2
}
