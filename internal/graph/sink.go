package graph

import "context"

// Sink receives graph statements in discovery order. The extractor emits
// each node and each edge at most once per run; implementations do not need
// their own deduplication.
type Sink interface {
	Node(name string) error
	Edge(caller, callee string) error
}

// StoreSink adapts a Store to the extractor's Sink interface.
type StoreSink struct {
	ctx   context.Context
	store Store
}

var _ Sink = (*StoreSink)(nil)

// NewStoreSink returns a Sink that records statements into store. ctx is
// threaded through to every store call.
func NewStoreSink(ctx context.Context, store Store) *StoreSink {
	return &StoreSink{ctx: ctx, store: store}
}

// Node records a declared function.
func (s *StoreSink) Node(name string) error {
	return s.store.AddFunction(s.ctx, FunctionNode{Name: name})
}

// Edge records a call relationship.
func (s *StoreSink) Edge(caller, callee string) error {
	return s.store.AddCall(s.ctx, CallEdge{Caller: caller, Callee: callee})
}
