package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"monomachia/internal/gp"
)

// DOT renders a tree graph as Graphviz DOT text. Drawing the diagram from
// this text is the consumer's job.
func DOT(name string, g gp.Graph) string {
	ids := make([]int, 0, len(g.Labels))
	for id := range g.Labels {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	for _, id := range ids {
		fmt.Fprintf(&b, "  n%d [label=%q];\n", id, g.Labels[id])
	}
	for _, edge := range g.Edges {
		fmt.Fprintf(&b, "  n%d -> n%d;\n", edge[0], edge[1])
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteTreeDOT writes a tree's DOT text into a run directory and returns
// the file path.
func WriteTreeDOT(baseDir, runID, name string, g gp.Graph) (string, error) {
	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(runDir, name+".dot")
	if err := os.WriteFile(path, []byte(DOT(name, g)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
