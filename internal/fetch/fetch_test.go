package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRef(t *testing.T) {
	assert.Equal(t, "feature-foo", sanitizeRef("feature/foo"))
	assert.Equal(t, "main", sanitizeRef("main"))
}

func buildTarball(t *testing.T, topLevel string, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		full := topLevel + "/" + name
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     full,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestDownloadAndExtractStripsTopLevelDir(t *testing.T) {
	tarball := buildTarball(t, "owner-repo-abc123", map[string]string{
		"README.md":  "hello",
		"src/main.js": "console.log(1)",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(tarball)
	}))
	defer srv.Close()

	destDir := t.TempDir()
	require.NoError(t, downloadAndExtract(context.Background(), srv.URL, destDir))

	readme, err := os.ReadFile(filepath.Join(destDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(readme))

	main, err := os.ReadFile(filepath.Join(destDir, "src", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(main))
}

func TestDownloadAndExtractRejectsPathEscape(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "top/../../evil.txt",
		Mode: 0o644,
		Size: 4,
	}))
	_, err := tw.Write([]byte("evil"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	destDir := t.TempDir()
	err = downloadAndExtract(context.Background(), srv.URL, destDir)
	assert.Error(t, err)
}
