// Package discovery walks a source tree and returns the sorted list of
// files the extractors should look at, reading each with an encoding
// fallback. It is a thin collaborator: it hands the extraction stage
// (path, bytes) pairs, nothing more.
package discovery

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/obslog"
)

// pruneDirs are basenames skipped outright during the walk: build,
// vendor, and cache directories that never hold source worth scanning.
var pruneDirs = map[string]bool{
	"node_modules":    true,
	"dist":            true,
	"build":           true,
	"out":             true,
	"target":          true,
	"__pycache__":     true,
	"venv":            true,
	".venv":           true,
	"env":             true,
	"vendor":          true,
	".git":            true,
	".pio":            true,
	".cache":          true,
	".parcel-cache":   true,
	"coverage":        true,
	".nyc_output":     true,
	".pytest_cache":   true,
	".tox":            true,
	".idea":           true,
	".vscode":         true,
}

// extensionLanguage is the canonical suffix -> language table.
var extensionLanguage = map[string]graph.Language{
	".js":   graph.LangJS,
	".jsx":  graph.LangJS,
	".mjs":  graph.LangJS,
	".cjs":  graph.LangJS,
	".ts":   graph.LangTS,
	".tsx":  graph.LangTS,
	".py":   graph.LangPython,
	".cpp":  graph.LangCPP,
	".c":    graph.LangCPP,
	".h":    graph.LangCPP,
	".hpp":  graph.LangCPP,
	".ino":  graph.LangArduino,
	".json": graph.LangConfig,
	".yaml": graph.LangConfig,
	".yml":  graph.LangConfig,
	".toml": graph.LangConfig,
	".ini":  graph.LangConfig,
}

// File is a discovered, already-read source file.
type File struct {
	Path     string // root-relative, forward-slash separated
	Language graph.Language
	Content  []byte
}

// Walk discovers every accepted file under root, reads it with an
// encoding fallback, and returns the results sorted lexicographically by
// path so that graph construction is deterministic across runs.
//
// A directory is pruned if its basename is in the standard build/vendor
// exclude set or begins with "." (the root itself is never pruned). A
// file is accepted if its extension maps to a known language, or its
// basename begins with ".env". Files that cannot be read are silently
// skipped; content that is not valid UTF-8 is decoded as Latin-1.
func Walk(root string) ([]File, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if pruneDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if accepted(name) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	// Reads fan out across a bounded worker pool; each slot writes only
	// to its own index, so the result stays in the sorted order the
	// extraction stage depends on regardless of read completion order.
	raw := make([][]byte, len(paths))
	ok := make([]bool, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0) * 2)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			content, readOK := readWithFallback(p)
			raw[i], ok[i] = content, readOK
			return nil
		})
	}
	_ = g.Wait() // readWithFallback never returns an error; only ok is meaningful

	files := make([]File, 0, len(paths))
	for i, p := range paths {
		if !ok[i] {
			obslog.Debug("file skipped: unreadable", "path", p)
			continue
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		files = append(files, File{
			Path:     filepath.ToSlash(rel),
			Language: languageOf(p),
			Content:  raw[i],
		})
	}
	return files, nil
}

func accepted(basename string) bool {
	if strings.HasPrefix(basename, ".env") {
		return true
	}
	_, ok := extensionLanguage[strings.ToLower(filepath.Ext(basename))]
	return ok
}

func languageOf(path string) graph.Language {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".env") {
		return graph.LangConfig
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".ino" {
		return graph.LangArduino
	}
	if lang, ok := extensionLanguage[ext]; ok {
		return lang
	}
	return graph.LangConfig
}

// readWithFallback returns path's content as-is when it is valid UTF-8
// and re-encodes it from Latin-1 otherwise. It returns (nil, false) only
// when the file cannot be read.
func readWithFallback(path string) ([]byte, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if utf8.Valid(raw) {
		return raw, true
	}
	// Latin-1 (ISO-8859-1): every byte is a valid code point, so this
	// reinterpretation always "succeeds" — it is the accepted fallback
	// for files written with a legacy single-byte encoding.
	return latin1ToUTF8(raw), true
}

func latin1ToUTF8(raw []byte) []byte {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return []byte(string(runes))
}
