package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/callflow/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a graph store.
// Functions become labeled nodes; call edges become arrows.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	functions, err := store.Functions(ctx)
	if err != nil {
		return "", fmt.Errorf("get functions: %w", err)
	}
	edges, err := store.Edges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Build name → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(name string) string {
		if id, ok := nodeIDs[name]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[name] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, f := range functions {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(f.Name), f.Name))
	}

	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", getID(e.Caller), getID(e.Callee)))
	}

	return sb.String(), nil
}
