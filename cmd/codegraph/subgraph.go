package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codegraph-dev/codegraph/internal/cliutil"
	"github.com/codegraph-dev/codegraph/internal/scan"
	"github.com/codegraph-dev/codegraph/internal/serialize"
)

var subgraphDepth int

var subgraphCmd = &cobra.Command{
	Use:   "subgraph <root> <start>",
	Short: "Extract the BFS-bounded neighborhood of one node",
	Long: `subgraph scans root, then returns every node reachable from start
(a full or partial node id) within --depth hops in either direction,
along with every bridge that touches a file in the result.`,
	Args: cobra.ExactArgs(2),
	RunE: runSubgraph,
}

func init() {
	subgraphCmd.Flags().IntVarP(&subgraphDepth, "depth", "d", 0, "max BFS depth (default: config scan.max_subgraph_depth)")
}

func runSubgraph(cmd *cobra.Command, args []string) error {
	root, start := args[0], args[1]

	g, err := scan.Run(scan.Options{Root: root})
	if err != nil {
		return err
	}
	if len(g.Nodes) == 0 {
		return cliutil.ErrNoSourceFiles(root)
	}

	depth := subgraphDepth
	if depth <= 0 {
		depth = cfg.Scan.MaxSubgraphDepth
	}

	sub := g.Subgraph(start, depth)
	if len(sub.Nodes) == 0 {
		return cliutil.ErrStartNodeNotFound(start, nil)
	}

	doc := serialize.Build(sub, nil)
	if err := serialize.Write(os.Stdout, doc); err != nil {
		return fmt.Errorf("write subgraph document: %w", err)
	}
	return nil
}
