package graph

import (
	"errors"

	"github.com/dusk-indust/callflow/internal/scan"
)

// Extractor consumes token streams and emits call-graph statements to a
// Sink. One Extractor spans a whole run: its dedup sets persist across input
// units so cross-file edges collapse, while nesting and declaration state is
// reset per unit.
//
// It is a heuristic state machine, not a grammar. Three rules drive it:
//
//  1. After a func keyword, the declared name is the first identifier seen
//     while paren and brace depth are both 0. Any receiver clause sits in
//     parens, so the depth guard skips over it.
//  2. After a var keyword, call detection is suppressed until '=', so a
//     type-conversion-shaped right-hand side is not misread.
//  3. Otherwise an identifier directly followed by '(' is a call; the caller
//     is the current function, or GLOBAL at top level.
type Extractor struct {
	sink  Sink
	nodes map[string]bool
	edges map[CallEdge]bool
}

// unitState is the per-input-unit extraction state. Fresh for every Process
// call.
type unitState struct {
	parenDepth  int
	braceDepth  int
	inFuncDecl  bool
	inVarDecl   bool
	currentFunc string
	prev        scan.Token
}

// NewExtractor returns an Extractor writing statements to sink.
func NewExtractor(sink Sink) *Extractor {
	return &Extractor{
		sink:  sink,
		nodes: make(map[string]bool),
		edges: make(map[CallEdge]bool),
	}
}

// Process pulls tokens from s until end of input, updating the state machine
// and emitting zero or more statements per token. A truncated literal or
// comment ends the unit quietly; any other scan error is returned.
func (e *Extractor) Process(s *scan.Scanner) error {
	var st unitState

	for {
		tok, err := s.Next()
		if err != nil {
			var trunc *scan.TruncatedLiteralError
			if errors.As(err, &trunc) {
				return nil
			}
			return err
		}
		if tok.Kind == scan.KindEOF {
			return nil
		}

		if err := e.step(&st, tok); err != nil {
			return err
		}
		st.prev = tok
	}
}

// step applies the transition rules for a single token.
func (e *Extractor) step(st *unitState, tok scan.Token) error {
	switch {
	case tok.Kind == scan.KindKeyword && tok.Lexeme == "func":
		st.inFuncDecl = true

	case tok.Kind == scan.KindKeyword && tok.Lexeme == "var":
		st.inVarDecl = true

	case tok.Kind == scan.KindIdentifier && st.inFuncDecl &&
		st.parenDepth == 0 && st.braceDepth == 0 && st.currentFunc == "":
		st.currentFunc = tok.Lexeme
		return e.emitNode(tok.Lexeme)

	case tok.Kind == scan.KindLParen:
		st.parenDepth++
		if !st.inFuncDecl && !st.inVarDecl && st.prev.Kind == scan.KindIdentifier {
			caller := st.currentFunc
			if caller == "" {
				caller = GlobalCaller
			}
			return e.emitEdge(caller, st.prev.Lexeme)
		}

	case tok.Kind == scan.KindRParen:
		st.parenDepth--

	case tok.Kind == scan.KindLBrace:
		st.braceDepth++
		st.inFuncDecl = false // the declaration header ends at the body brace

	case tok.Kind == scan.KindRBrace:
		st.braceDepth--
		if st.braceDepth == 0 {
			st.currentFunc = ""
		}

	case tok.Kind == scan.KindEqual:
		st.inVarDecl = false // the binding's left-hand side is over
	}
	return nil
}

// emitNode writes a node statement the first time name is seen.
func (e *Extractor) emitNode(name string) error {
	if e.nodes[name] {
		return nil
	}
	e.nodes[name] = true
	return e.sink.Node(name)
}

// emitEdge writes an edge statement the first time the exact pair is seen.
func (e *Extractor) emitEdge(caller, callee string) error {
	edge := CallEdge{Caller: caller, Callee: callee}
	if e.edges[edge] {
		return nil
	}
	e.edges[edge] = true
	return e.sink.Edge(caller, callee)
}
