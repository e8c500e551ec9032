package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/codegraph-dev/codegraph/internal/cliutil"
	"github.com/codegraph-dev/codegraph/internal/obslog"
	"github.com/codegraph-dev/codegraph/internal/scan"
)

var (
	watchAddr     string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Rebuild root's graph on every source change and serve it live",
	Long: `watch recursively observes root with fsnotify and rebuilds the graph
whenever a file under it is created, written, removed, or renamed
(directories whose name begins with "." are not watched), rate-limited so a burst of
saves (an editor's atomic rename-into-place, a formatter touching many
files) collapses into a single rebuild rather than one per event. The
result is served the same way as 'codegraph serve' (GET /graph, GET /ws).`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchAddr, "addr", ":8089", "address to serve the live graph on")
	watchCmd.Flags().DurationVar(&watchInterval, "min-interval", 500*time.Millisecond, "minimum time between rebuilds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, err := scan.Run(scan.Options{Root: root})
	if err != nil {
		return err
	}
	if len(g.Nodes) == 0 {
		return cliutil.ErrNoSourceFiles(root)
	}
	hub := newGraphHub(g)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()
	if err := addRecursive(fsw, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/graph", hub.handleGraph)
	mux.HandleFunc("/ws", hub.handleWebSocket)
	server := &http.Server{Addr: watchAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("serve failed")
		}
	}()

	go debounceRebuild(ctx, fsw, root, hub, watchInterval)

	fmt.Printf("codegraph watch rebuilding %s on change, serving on %s\n", root, watchAddr)
	logger.WithField("root", root).WithField("addr", watchAddr).Info("watching")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if name != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// debounceRebuild watches fsw for change events and rebuilds root's
// graph at most once per interval, using a token-bucket limiter so a
// burst of saves collapses into one rebuild instead of one per file.
func debounceRebuild(ctx context.Context, fsw *fsnotify.Watcher, root string, hub *graphHub, interval time.Duration) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	dirty := false
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	rebuild := func() {
		if err := rebuildAndBroadcast(ctx, root, hub); err != nil {
			logger.WithError(err).Warn("rebuild failed")
			return
		}
		obslog.Debug("graph rebuilt", "root", root)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = fsw.Add(event.Name)
				}
			}
			dirty = true

		case <-ticker.C:
			if !dirty {
				continue
			}
			if !limiter.Allow() {
				continue
			}
			dirty = false
			rebuild()

		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
