// Package cliutil turns internal errors into actionable, user-facing
// messages for cmd/codegraph's RunE functions, instead of letting a raw
// *fmt.wrapError or panic reach the terminal.
package cliutil

import (
	"fmt"
	"sort"
	"strings"
)

// ErrNoSourceFiles reports an empty scan root with a concrete next step.
func ErrNoSourceFiles(root string) error {
	return fmt.Errorf(`no recognized source files found under %s

Supported extensions: .js .jsx .mjs .cjs .ts .tsx .py .cpp .c .h .hpp .ino
.json .yaml .yml .toml .ini and .env files.

Check that the path is correct and isn't pruned (node_modules, build,
vendor, venv, and similar directories are skipped).`, root)
}

// ErrStartNodeNotFound reports a subgraph query whose start id resolved
// to nothing, suggesting the closest matches actually present.
func ErrStartNodeNotFound(start string, candidates []string) error {
	if len(candidates) == 0 {
		return fmt.Errorf("no node matches %q — run 'codegraph scan' first and check the id against its output", start)
	}
	sort.Strings(candidates)
	shown := candidates
	if len(shown) > 5 {
		shown = shown[:5]
	}
	suggestions := make([]string, 0, len(shown))
	for _, c := range shown {
		suggestions = append(suggestions, "  - "+c)
	}
	return fmt.Errorf("no node matches %q. Did you mean:\n%s", start, strings.Join(suggestions, "\n"))
}

// ErrAmbiguousStartNode reports a substring start id matching more than
// one node with none of the usual disambiguation rules breaking the tie.
func ErrAmbiguousStartNode(start string, matches []string) error {
	sort.Strings(matches)
	return fmt.Errorf("%q matches %d nodes; pass a longer id to disambiguate:\n  %s",
		start, len(matches), strings.Join(matches, "\n  "))
}

// ErrSinkUnconfigured reports a persistence subcommand invoked without
// the config needed to reach its backend.
func ErrSinkUnconfigured(sinkType string) error {
	return fmt.Errorf("sink %q is not configured — set sink.%s in codegraph.yaml or the matching CODEGRAPH_SINK_* environment variable", sinkType, sinkType)
}

// ErrMissingGitHubToken reports a fetch attempted with no token
// reachable from either the environment or the keychain.
func ErrMissingGitHubToken() error {
	return fmt.Errorf(`no GitHub token available.

Set GITHUB_TOKEN in your environment, or run:
  codegraph fetch --login
to store a personal access token in your OS keychain.`)
}
