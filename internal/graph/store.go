package graph

import (
	"context"
	"io"
)

// Store is the interface for call-graph backends.
// Implementations: KuzuStore (persistent, cgo), MemStore (in-memory).
type Store interface {
	io.Closer

	// Schema setup — called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddFunction(ctx context.Context, node FunctionNode) error
	AddCall(ctx context.Context, edge CallEdge) error

	// Read operations.
	GetFunction(ctx context.Context, name string) (*FunctionNode, error)
	QueryFunctions(ctx context.Context, query string, limit int) ([]FunctionNode, error)
	Functions(ctx context.Context) ([]FunctionNode, error)
	Edges(ctx context.Context) ([]CallEdge, error)

	// Graph traversal.
	Calls(ctx context.Context, name string, direction Direction, maxDepth int) ([]CallChain, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}
