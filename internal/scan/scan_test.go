package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraph-dev/codegraph/internal/cache"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunBuildsGraphAcrossLanguages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.py", "import requests\nclient.publish('sensors/temp', payload)\n")
	writeFile(t, dir, "firmware/main.ino", "void setup() { client.subscribe(\"sensors/temp\"); }\n")
	writeFile(t, dir, ".env", "API_KEY=secret\n")

	g, err := Run(Options{Root: dir})
	require.NoError(t, err)

	assert.Contains(t, g.Nodes, "file:src/app.py")
	assert.Contains(t, g.Nodes, "file:firmware/main.ino")
	assert.NotEmpty(t, g.Bridges)
}

func TestRunIsEmptyForAnEmptyTree(t *testing.T) {
	dir := t.TempDir()
	g, err := Run(Options{Root: dir})
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
}

func TestRunPopulatesCacheWhenStoreProvided(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.py", "import requests\n")

	cachePath := filepath.Join(dir, "cache.db")
	store, err := cache.Open(cachePath)
	require.NoError(t, err)
	defer store.Close()

	g, err := Run(Options{Root: dir, CacheStore: store})
	require.NoError(t, err)
	assert.NotEmpty(t, g.Nodes)

	content, err := os.ReadFile(filepath.Join(dir, "src/app.py"))
	require.NoError(t, err)
	hash := cache.HashContent(content)
	entry, hit, err := store.Lookup("src/app.py", hash)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, len(g.Nodes), entry.NodeCount)
}
