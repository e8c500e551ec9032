package extract

import (
	"testing"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(path string, lang graph.Language, content string) *graph.Graph {
	g := graph.New()
	File(discovery.File{Path: path, Language: lang, Content: []byte(content)}, g)
	return g
}

func TestJSImportsAndExports(t *testing.T) {
	g := run("src/app.js", graph.LangJS, "import { foo } from './foo';\nexport function bar() {}\n")

	assert.Contains(t, g.Nodes, "file:src/app.js")
	// Import targets are edge targets only; the extractor adds no node for them.
	assert.NotContains(t, g.Nodes, "file:src/foo")
	assert.Contains(t, g.Nodes, "export:src/app.js:bar")

	var sawImport, sawExport bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeImports && e.Target == "file:src/foo" {
			sawImport = true
		}
		if e.EdgeType == graph.EdgeExports && e.Target == "export:src/app.js:bar" {
			sawExport = true
		}
	}
	assert.True(t, sawImport)
	assert.True(t, sawExport)
}

func TestJSHTTPRouteAndFetch(t *testing.T) {
	g := run("srv.ts", graph.LangTS, "app.get('/users/:id', handler);\n")
	require.Contains(t, g.Nodes, "http:GET:/users/:id")
	assert.Equal(t, graph.NodeEndpoint, g.Nodes["http:GET:/users/:id"].NodeType)

	g2 := run("web.ts", graph.LangTS, "axios.get('/api/missing').then(render);\n")
	require.Len(t, g2.Edges, 1)
	var foundFetch bool
	for _, e := range g2.Edges {
		if e.EdgeType == graph.EdgeFetches && e.Target == "http:GET:/api/missing" {
			foundFetch = true
		}
	}
	assert.True(t, foundFetch)
}

func TestJSWebSocketDirection(t *testing.T) {
	g := run("client.js", graph.LangJS, "socket.emit('ready');\nsocket.on('pong', cb);\n")
	require.Contains(t, g.Nodes, "ws:ready")
	require.Contains(t, g.Nodes, "ws:pong")

	var emitOK, onOK bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeEmits && e.Source == "file:client.js" && e.Target == "ws:ready" {
			emitOK = true
		}
		if e.EdgeType == graph.EdgeSubscribes && e.Source == "ws:pong" && e.Target == "file:client.js" {
			onOK = true
		}
	}
	assert.True(t, emitOK)
	assert.True(t, onOK)
}

func TestJSEnvUse(t *testing.T) {
	g := run("srv.js", graph.LangJS, "const url = process.env.DATABASE_URL;\n")
	require.Contains(t, g.Nodes, "env:DATABASE_URL")
	var found bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeEnvUses && e.Target == "env:DATABASE_URL" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPythonDefsAndMQTT(t *testing.T) {
	g := run("a.py", graph.LangPython, "def handler():\n    client.publish(\"sensors/temperature\", 22)\n")
	require.Contains(t, g.Nodes, "func:a.py:handler")
	require.Contains(t, g.Nodes, "mqtt:sensors/temperature")

	var pub bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgePublishes && e.Source == "file:a.py" && e.Target == "mqtt:sensors/temperature" {
			pub = true
			assert.Equal(t, 2, e.Line)
		}
	}
	assert.True(t, pub)
}

func TestPythonRouteDefaultsToGet(t *testing.T) {
	g := run("srv.py", graph.LangPython, "@app.route('/users/<id>')\ndef get_user(id):\n    pass\n")
	require.Contains(t, g.Nodes, "http:GET:/users/<id>")
}

func TestPythonRelativeImport(t *testing.T) {
	g := run("pkg/sub/mod.py", graph.LangPython, "from ..utils import helper\n")
	var targets []string
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeImports {
			targets = append(targets, e.Target)
		}
	}
	assert.Contains(t, targets, "file:pkg/utils")
}

func TestPythonSerialDirections(t *testing.T) {
	g := run("reader.py", graph.LangPython, "data = ser.readline()\nser.write(b'ok')\n")
	require.Contains(t, g.Nodes, "serial:connection")

	var read, write bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeSerialRead && e.Source == "serial:connection" && e.Target == "file:reader.py" {
			read = true
		}
		if e.EdgeType == graph.EdgeSerialWrite && e.Source == "file:reader.py" && e.Target == "serial:connection" {
			write = true
		}
	}
	assert.True(t, read)
	assert.True(t, write)
}

func TestArduinoMQTTSubscribeAndFunction(t *testing.T) {
	g := run("b.ino", graph.LangArduino, "void setup() {\n  mqtt.subscribe(\"sensors/+\");\n}\n")
	require.Contains(t, g.Nodes, "func:b.ino:setup")
	require.Contains(t, g.Nodes, "mqtt:sensors/+")

	var sub bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeSubscribes && e.Source == "mqtt:sensors/+" && e.Target == "file:b.ino" {
			sub = true
			assert.Equal(t, 2, e.Line)
		}
	}
	assert.True(t, sub)
}

func TestCIncludesLocalAndSystem(t *testing.T) {
	g := run("src/main.cpp", graph.LangCPP, "#include \"util.h\"\n#include <stdio.h>\n")
	var targets []string
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeIncludes {
			targets = append(targets, e.Target)
		}
	}
	assert.Contains(t, targets, "file:src/util.h")
	assert.Contains(t, g.Nodes, "lib:stdio.h")
}

func TestDotEnvDefines(t *testing.T) {
	g := run(".env", graph.LangConfig, "# comment\nDATABASE_URL=postgres://localhost/db\n")
	require.Contains(t, g.Nodes, "env:DATABASE_URL")
	var found bool
	for _, e := range g.Edges {
		if e.EdgeType == graph.EdgeEnvDefines && e.Target == "env:DATABASE_URL" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPackageJSONDepsAndScripts(t *testing.T) {
	content := `{
  "dependencies": {"express": "^4.0.0"},
  "devDependencies": {"jest": "^29.0.0"},
  "scripts": {"test": "jest"}
}`
	g := run("package.json", graph.LangConfig, content)
	assert.Contains(t, g.Nodes, "pkg:express")
	assert.Contains(t, g.Nodes, "pkg:jest")
	assert.Contains(t, g.Nodes, "script:package.json:test")
}

func TestPackageJSONParseFailureStillAddsFileNode(t *testing.T) {
	g := run("package.json", graph.LangConfig, "{ not valid json")
	assert.Contains(t, g.Nodes, "file:package.json")
	assert.NotContains(t, g.Nodes, "pkg:anything")
}
