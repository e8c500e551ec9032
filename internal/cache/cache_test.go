package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashContentIsDeterministic(t *testing.T) {
	h1 := HashContent([]byte("hello"))
	h2 := HashContent([]byte("hello"))
	h3 := HashContent([]byte("world"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestLookupMissReturnsFalse(t *testing.T) {
	s := openTestStore(t)
	_, found, err := s.Lookup("a.js", HashContent([]byte("x")))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutThenLookupHit(t *testing.T) {
	s := openTestStore(t)
	hash := HashContent([]byte("const x = 1;"))
	require.NoError(t, s.Put("a.js", Entry{ContentHash: hash, NodeCount: 3, EdgeCount: 2}))

	entry, found, err := s.Lookup("a.js", hash)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, entry.NodeCount)
	assert.Equal(t, 2, entry.EdgeCount)
}

func TestLookupMissesOnChangedContent(t *testing.T) {
	s := openTestStore(t)
	oldHash := HashContent([]byte("const x = 1;"))
	require.NoError(t, s.Put("a.js", Entry{ContentHash: oldHash, NodeCount: 1}))

	newHash := HashContent([]byte("const x = 2;"))
	_, found, err := s.Lookup("a.js", newHash)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDefaultPathCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	path, err := DefaultPath(dir)
	require.NoError(t, err)
	assert.Equal(t, dir+"/incremental.db", path)
}
