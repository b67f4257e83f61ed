//go:build cgo

package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestKuzu creates a fresh in-memory KuzuStore with an initialized schema
// and registers a cleanup to close it.
func newTestKuzu(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func TestKuzuStore_InitSchemaIdempotent(t *testing.T) {
	s := newTestKuzu(t)
	// Second call must be a no-op (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestKuzuStore_FunctionRoundTrip(t *testing.T) {
	s := newTestKuzu(t)
	ctx := context.Background()

	require.NoError(t, s.AddFunction(ctx, FunctionNode{Name: "main"}))
	// MERGE makes re-adding the same function safe.
	require.NoError(t, s.AddFunction(ctx, FunctionNode{Name: "main"}))

	f, err := s.GetFunction(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "main", f.Name)

	missing, err := s.GetFunction(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FunctionCount)
}

func TestKuzuStore_AddCallCreatesEndpoints(t *testing.T) {
	s := newTestKuzu(t)
	ctx := context.Background()

	// Neither endpoint declared beforehand.
	require.NoError(t, s.AddCall(ctx, CallEdge{Caller: GlobalCaller, Callee: "start"}))

	edges, err := s.Edges(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, CallEdge{Caller: GlobalCaller, Callee: "start"}, edges[0])

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FunctionCount)
	assert.Equal(t, 1, stats.CallCount)
}

func TestKuzuStore_Traversal(t *testing.T) {
	s := newTestKuzu(t)
	seedStore(t, s)
	ctx := context.Background()

	chains, err := s.Calls(ctx, "main", DirectionCallees, 5)
	require.NoError(t, err)

	reached := map[string]int{}
	for _, c := range chains {
		reached[c.Nodes[len(c.Nodes)-1]] = c.Depth
	}
	assert.Equal(t, map[string]int{"parse": 1, "render": 1, "scan": 2}, reached)

	up, err := s.Calls(ctx, "scan", DirectionCallers, 5)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, c := range up {
		names[c.Nodes[len(c.Nodes)-1]] = true
	}
	assert.True(t, names["parse"])
	assert.True(t, names["main"])
}

func TestKuzuStore_QueryFunctions(t *testing.T) {
	s := newTestKuzu(t)
	seedStore(t, s)
	ctx := context.Background()

	got, err := s.QueryFunctions(ctx, "a", 10)
	require.NoError(t, err)

	var names []string
	for _, f := range got {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "main")
	assert.Contains(t, names, "parse")
}
