package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dusk-indust/callflow/internal/graph"
)

// CallGraphExport is the top-level JSON export structure.
type CallGraphExport struct {
	ExportedAt string               `json:"exportedAt"`
	Functions  []graph.FunctionNode `json:"functions"`
	Calls      []graph.CallEdge     `json:"calls"`
	Stats      graph.GraphStats     `json:"stats"`
}

// ExportCallGraph builds a CallGraphExport snapshot from a graph store.
func ExportCallGraph(ctx context.Context, store graph.Store) (*CallGraphExport, error) {
	functions, err := store.Functions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get functions: %w", err)
	}
	edges, err := store.Edges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &CallGraphExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Functions:  functions,
		Calls:      edges,
		Stats:      *stats,
	}, nil
}
