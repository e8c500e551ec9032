package extract

import (
	"regexp"
	"strings"

	"github.com/codegraph-dev/codegraph/internal/discovery"
	"github.com/codegraph-dev/codegraph/internal/graph"
)

var envAssignment = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

func dotenv(f discovery.File, g *graph.Graph, fileNodeID string) {
	for i, raw := range lines(f.Content) {
		line := strings.TrimSpace(raw)
		lineNo := i + 1
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := envAssignment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		addEnvDefine(f, g, fileNodeID, m[1], lineNo)
	}
}
