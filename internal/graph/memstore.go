package graph

import (
	"context"
	"strings"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps and slices, preserving insertion
// order for deterministic exports. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu        sync.RWMutex
	functions map[string]FunctionNode
	order     []string // function names in insertion order
	edges     []CallEdge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		functions: make(map[string]FunctionNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddFunction stores a function node keyed by its name.
func (m *MemStore) AddFunction(_ context.Context, node FunctionNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.functions[node.Name]; !ok {
		m.order = append(m.order, node.Name)
	}
	m.functions[node.Name] = node
	return nil
}

// AddCall appends a call edge.
func (m *MemStore) AddCall(_ context.Context, edge CallEdge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetFunction returns the function with the given name, or nil if not found.
func (m *MemStore) GetFunction(_ context.Context, name string) (*FunctionNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.functions[name]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// QueryFunctions returns functions whose name contains query
// (case-insensitive), up to limit results. A limit <= 0 returns all matches.
func (m *MemStore) QueryFunctions(_ context.Context, query string, limit int) ([]FunctionNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []FunctionNode
	for _, name := range m.order {
		if strings.Contains(strings.ToLower(name), lowerQuery) {
			results = append(results, m.functions[name])
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

// Functions returns all function nodes in insertion order.
func (m *MemStore) Functions(_ context.Context) ([]FunctionNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FunctionNode, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.functions[name])
	}
	return out, nil
}

// Edges returns a copy of all call edges in insertion order.
func (m *MemStore) Edges(_ context.Context) ([]CallEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CallEdge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Calls performs a BFS over call edges starting from name in the given
// direction, up to maxDepth hops. It returns one CallChain per reachable
// function.
func (m *MemStore) Calls(_ context.Context, name string, direction Direction, maxDepth int) ([]CallChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		return nil, nil
	}

	// BFS state: each entry tracks the path from name to the current node.
	type bfsEntry struct {
		name string
		path []string
	}

	visited := map[string]bool{name: true}
	queue := []bfsEntry{{name: name, path: []string{name}}}
	var chains []CallChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, nb := range m.neighbors(entry.name, direction) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, CallChain{
					Nodes: newPath,
					Depth: len(newPath) - 1,
				})
				nextQueue = append(nextQueue, bfsEntry{name: nb, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// neighbors returns names reachable from name in one hop along the given
// direction.
func (m *MemStore) neighbors(name string, direction Direction) []string {
	var result []string
	for _, e := range m.edges {
		switch direction {
		case DirectionCallees:
			if e.Caller == name {
				result = append(result, e.Callee)
			}
		case DirectionCallers:
			if e.Callee == name {
				result = append(result, e.Caller)
			}
		}
	}
	return result
}

// Stats returns counts of functions and call edges.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		FunctionCount: len(m.functions),
		CallCount:     len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
