package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestWalkSortsAndFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.py", "import os\n")
	writeFile(t, root, "a.js", "console.log(1)\n")
	writeFile(t, root, "node_modules/left-pad/index.js", "module.exports = 1\n")
	writeFile(t, root, ".env", "KEY=value\n")
	writeFile(t, root, "README.md", "not a source file\n")

	files, err := Walk(root)
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{".env", "a.js", "b.py"}, paths)
}

func TestWalkLanguageTagging(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.tsx", "export const App = () => null\n")
	writeFile(t, root, "sketch.ino", "void setup() {}\n")

	files, err := Walk(root)
	require.NoError(t, err)
	byPath := map[string]graph.Language{}
	for _, f := range files {
		byPath[f.Path] = f.Language
	}
	assert.Equal(t, graph.LangTS, byPath["app.tsx"])
	assert.Equal(t, graph.LangArduino, byPath["sketch.ino"])
}

func TestWalkPrunesDotDirectoriesExceptRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".hidden/skip.js", "x()\n")
	writeFile(t, root, "keep.js", "x()\n")

	files, err := Walk(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.js", files[0].Path)
}
