// Command codegraph walks a multi-language source tree, extracts a
// deterministic dependency graph, detects cross-language bridges, and
// prints the result as JSON — optionally persisting it to SQLite,
// PostgreSQL, or Neo4j, and optionally serving it live over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codegraph-dev/codegraph/internal/config"
	"github.com/codegraph-dev/codegraph/internal/obslog"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "codegraph",
	Short:   "codegraph builds a cross-language dependency graph from source",
	Long:    `codegraph walks a source tree, extracts a node/edge graph per file, and detects MQTT, HTTP, WebSocket, serial, and environment-variable bridges between files written in different languages.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
			obslog.SetLevel(slog.LevelDebug)
		} else {
			logger.SetLevel(logrus.InfoLevel)
			obslog.SetLevel(slog.LevelInfo)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./codegraph.yaml or ~/.codegraph/codegraph.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`codegraph {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(subgraphCmd)
	rootCmd.AddCommand(clustersCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}
