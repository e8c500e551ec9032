// Package cache provides the incremental-scan acceleration layer: a
// bbolt-backed store mapping a repo-relative path to the content hash
// and the exact nodes/edges produced the last time it was extracted. A
// scan consults it before re-running an extractor on an unchanged file
// and, on a hit, re-inserts the stored nodes/edges instead of invoking
// the extractor — it never changes what a full scan would have
// produced, only how much work it takes to reproduce it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/codegraph-dev/codegraph/internal/graph"
)

var bucketName = []byte("file_identity")

// Entry is the cached extraction result for one file: the nodes and
// edges it produced, keyed by the content hash that produced them.
// NodeCount/EdgeCount mirror len(Nodes)/len(Edges) for callers that only
// need the summary.
type Entry struct {
	ContentHash string      `json:"content_hash"`
	NodeCount   int         `json:"node_count"`
	EdgeCount   int         `json:"edge_count"`
	Nodes       []graph.Node `json:"nodes,omitempty"`
	Edges       []graph.Edge `json:"edges,omitempty"`
}

// Store wraps a bbolt database holding one Entry per scanned path.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) the bbolt file at path and ensures its
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache at %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying bbolt file.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashContent returns the hex sha256 digest of content, the key used to
// detect whether a file changed since it was last cached.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached entry for path if present and its stored
// hash matches contentHash — i.e. the file is unchanged since caching.
func (s *Store) Lookup(path, contentHash string) (Entry, bool, error) {
	var entry Entry
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(path))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("decode cache entry for %s: %w", path, err)
		}
		found = entry.ContentHash == contentHash
		return nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return entry, found, nil
}

// Put records entry (content hash, counts, nodes, and edges) for path,
// replacing any previous entry.
func (s *Store) Put(path string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry for %s: %w", path, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(path), raw)
	})
}

// DefaultPath returns the conventional cache file location under dir,
// creating dir if it does not yet exist.
func DefaultPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory %s: %w", dir, err)
	}
	return dir + "/incremental.db", nil
}
