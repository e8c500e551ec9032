package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/codegraph-dev/codegraph/internal/cliutil"
	"github.com/codegraph-dev/codegraph/internal/graph"
	"github.com/codegraph-dev/codegraph/internal/scan"
	"github.com/codegraph-dev/codegraph/internal/serialize"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <root>",
	Short: "Scan root once and serve its graph over HTTP",
	Long: `serve scans root once, then exposes the result at GET /graph (JSON) and
GET /ws (a websocket that sends the graph's stats summary on connect).
serve does not rebuild the graph; codegraph watch serves the same two
endpoints and pushes a fresh summary after every rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8089", "address to listen on")
	serveCmd.Flags().BoolVar(&serveOpen, "open", true, "open the served graph in a browser once listening starts")
}

// graphHub holds the most recently built graph and fans its summary out
// to every connected websocket client on each rebuild.
type graphHub struct {
	mu      sync.RWMutex
	current *graph.Graph

	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool
	clientMu sync.Mutex
}

func newGraphHub(g *graph.Graph) *graphHub {
	return &graphHub{
		current: g,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *graphHub) Graph() *graph.Graph {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Update replaces the served graph and pushes its stats to every
// connected websocket client.
func (h *graphHub) Update(g *graph.Graph) {
	h.mu.Lock()
	h.current = g
	h.mu.Unlock()

	stats := g.Stats()
	h.clientMu.Lock()
	defer h.clientMu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(stats); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *graphHub) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	doc := serialize.Build(h.Graph(), nil)
	if err := serialize.Write(w, doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *graphHub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.clientMu.Lock()
	h.clients[conn] = true
	h.clientMu.Unlock()

	if err := conn.WriteJSON(h.Graph().Stats()); err != nil {
		conn.Close()
		h.clientMu.Lock()
		delete(h.clients, conn)
		h.clientMu.Unlock()
		return
	}

	go func() {
		defer func() {
			h.clientMu.Lock()
			delete(h.clients, conn)
			h.clientMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func runServe(cmd *cobra.Command, args []string) error {
	root := args[0]

	g, err := scan.Run(scan.Options{Root: root})
	if err != nil {
		return err
	}
	if len(g.Nodes) == 0 {
		return cliutil.ErrNoSourceFiles(root)
	}

	hub := newGraphHub(g)
	mux := http.NewServeMux()
	mux.HandleFunc("/graph", hub.handleGraph)
	mux.HandleFunc("/ws", hub.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	logger.WithField("addr", serveAddr).Info("serving graph")
	fmt.Printf("codegraph serve listening on %s (GET /graph, GET /ws)\n", serveAddr)

	server := &http.Server{Addr: serveAddr, Handler: mux}

	if serveOpen {
		go openWhenReady(serveAddr)
	}

	return server.ListenAndServe()
}

// openWhenReady waits for addr to accept connections, then opens it in the
// user's browser. Failing to open it is never fatal: the URL is already on
// stdout for the user to visit by hand.
func openWhenReady(addr string) {
	url := "http://" + localhost(addr) + "/graph"
	for i := 0; i < 50; i++ {
		if conn, err := net.Dial("tcp", localhost(addr)); err == nil {
			conn.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err := browser.OpenURL(url); err != nil {
		fmt.Printf("could not open browser automatically, visit %s\n", url)
	}
}

// localhost turns a listen address like ":8089" into "localhost:8089".
func localhost(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// rebuildAndBroadcast re-scans root and pushes the result through hub;
// called by `watch`'s debounce loop.
func rebuildAndBroadcast(ctx context.Context, root string, hub *graphHub) error {
	g, err := scan.Run(scan.Options{Root: root})
	if err != nil {
		return err
	}
	hub.Update(g)
	return nil
}
