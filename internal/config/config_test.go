package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPopulatesBaseline(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.Scan.MaxSubgraphDepth)
	assert.Equal(t, 2, cfg.Scan.MinClusterSize)
	assert.Equal(t, "json", cfg.Scan.OutputFormat)
	assert.Equal(t, "sqlite", cfg.Sink.Type)
	assert.Equal(t, 10, cfg.GitHub.RateLimit)
}

func TestLoadWithMissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(old)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Scan.MaxSubgraphDepth, cfg.Scan.MaxSubgraphDepth)
}

func TestLoadReadsExplicitYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  max_subgraph_depth: 7\n  min_cluster_size: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scan.MaxSubgraphDepth)
	assert.Equal(t, 5, cfg.Scan.MinClusterSize)
}

func TestLoadAppliesGitHubTokenEnvOverride(t *testing.T) {
	old := os.Getenv("GITHUB_TOKEN")
	os.Setenv("GITHUB_TOKEN", "ghp_override")
	defer func() {
		if old == "" {
			os.Unsetenv("GITHUB_TOKEN")
		} else {
			os.Setenv("GITHUB_TOKEN", old)
		}
	}()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ghp_override", cfg.GitHub.Token)
}

func TestSaveAndReloadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")

	cfg := Default()
	cfg.Scan.MaxSubgraphDepth = 9
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, reloaded.Scan.MaxSubgraphDepth)
}
