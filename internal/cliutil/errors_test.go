package cliutil

import (
	"strings"
	"testing"
)

func TestErrNoSourceFilesMentionsRoot(t *testing.T) {
	err := ErrNoSourceFiles("/tmp/repo")
	if !strings.Contains(err.Error(), "/tmp/repo") {
		t.Errorf("expected error to mention the scanned root, got: %v", err)
	}
}

func TestErrStartNodeNotFoundWithoutCandidates(t *testing.T) {
	err := ErrStartNodeNotFound("file:missing.js", nil)
	if !strings.Contains(err.Error(), "codegraph scan") {
		t.Errorf("expected a suggestion to run scan first, got: %v", err)
	}
}

func TestErrStartNodeNotFoundSuggestsCandidates(t *testing.T) {
	err := ErrStartNodeNotFound("file:ab.js", []string{"file:abc.js", "file:abd.js"})
	if !strings.Contains(err.Error(), "file:abc.js") {
		t.Errorf("expected candidate to be listed, got: %v", err)
	}
}

func TestErrAmbiguousStartNodeListsAllMatches(t *testing.T) {
	err := ErrAmbiguousStartNode("server", []string{"file:server/a.js", "file:server/b.js"})
	if !strings.Contains(err.Error(), "2 nodes") {
		t.Errorf("expected match count in message, got: %v", err)
	}
}

func TestErrMissingGitHubTokenSuggestsLogin(t *testing.T) {
	err := ErrMissingGitHubToken()
	if !strings.Contains(err.Error(), "GITHUB_TOKEN") {
		t.Errorf("expected mention of GITHUB_TOKEN, got: %v", err)
	}
}
