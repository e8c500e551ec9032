// Package graph holds the canonical node/edge/bridge schema produced by
// the language extractors and consumed by the bridge detector, the
// subgraph/cluster queries, and the serializer.
package graph

// Language tags a node or edge with the source language it was observed in.
type Language string

const (
	LangJS     Language = "js"
	LangTS     Language = "ts"
	LangPython Language = "python"
	LangCPP    Language = "cpp"
	LangArduino Language = "arduino"
	LangConfig Language = "config"
)

// NodeType classifies the kind of entity a Node represents.
type NodeType string

const (
	NodeFile     NodeType = "file"
	NodeFunction NodeType = "function"
	NodeClass    NodeType = "class"
	NodeEndpoint NodeType = "endpoint"
	NodeEvent    NodeType = "event"
	NodeTopic    NodeType = "topic"
	NodeVariable NodeType = "variable"
)

// EdgeType classifies the kind of relationship an Edge represents.
type EdgeType string

const (
	EdgeImports     EdgeType = "imports"
	EdgeExports     EdgeType = "exports"
	EdgeDefines     EdgeType = "defines"
	EdgeCalls       EdgeType = "calls"
	EdgeEmits       EdgeType = "emits"
	EdgeSubscribes  EdgeType = "subscribes"
	EdgePublishes   EdgeType = "publishes"
	EdgeFetches     EdgeType = "fetches"
	EdgeIncludes    EdgeType = "includes"
	EdgeSerialWrite EdgeType = "serial_write"
	EdgeSerialRead  EdgeType = "serial_read"
	EdgeEnvUses     EdgeType = "env_uses"
	EdgeEnvDefines  EdgeType = "env_defines"
)

// BridgeType classifies the kind of cross-language correlation a Bridge represents.
type BridgeType string

const (
	BridgeMQTT      BridgeType = "mqtt"
	BridgeHTTP      BridgeType = "http"
	BridgeWebSocket BridgeType = "websocket"
	BridgeSerial    BridgeType = "serial"
	BridgeEnv       BridgeType = "env"
)

// Metadata is an open-ended bag of scalar attributes attached to nodes and edges.
type Metadata map[string]any

// Node is one addressable entity in the graph: a file, a definition, an
// endpoint, an event, a topic, or an environment variable.
type Node struct {
	ID       string   `json:"id"`
	File     string   `json:"file,omitempty"`
	Name     string   `json:"name"`
	NodeType NodeType `json:"node_type"`
	Language Language `json:"language"`
	Line     int      `json:"line,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Edge is one directed relationship between two node ids. The target id
// need not resolve to an existing node — dangling targets are how the
// graph represents external packages, unmatched endpoints, and undefined
// environment variables.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	EdgeType EdgeType `json:"edge_type"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Actor is one producer or consumer action recorded against a Bridge key.
type Actor struct {
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
	Language Language `json:"language"`
	Action   string   `json:"action"`
}

// Bridge is a cross-language correlation discovered by matching a shared
// string key (an MQTT topic, an HTTP path, a WebSocket event name, the
// serial channel, or an environment variable name) across producers and
// consumers observed in possibly different languages.
type Bridge struct {
	BridgeType BridgeType `json:"bridge_type"`
	Key        string     `json:"key"`
	Producers  []Actor    `json:"producers"`
	Consumers  []Actor    `json:"consumers"`
}
