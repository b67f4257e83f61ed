package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/callflow/internal/graph"
)

// RenderHint is the comment line at the top of every generated document,
// telling the reader how to turn it into an image.
const RenderHint = "# dot -Ksfdp -Tpng input.gv -o output.png"

// DotWriter emits Graphviz DOT statements for call-graph nodes and edges, in
// the order they are discovered. The surrounding document wrapper is written
// separately via Header and Footer so that statement output can be filtered
// before wrapping.
type DotWriter struct {
	w io.Writer
}

var _ graph.Sink = (*DotWriter)(nil)

// NewDotWriter returns a DotWriter emitting to w.
func NewDotWriter(w io.Writer) *DotWriter {
	return &DotWriter{w: w}
}

// Node writes a node-declaration statement.
func (d *DotWriter) Node(name string) error {
	_, err := fmt.Fprintf(d.w, "\t%q;\n", name)
	return err
}

// Edge writes a directed-edge statement.
func (d *DotWriter) Edge(caller, callee string) error {
	_, err := fmt.Fprintf(d.w, "\t%q -> %q;\n", caller, callee)
	return err
}

// Header writes the document opening: the render hint, the digraph line, and
// the layout attribute.
func (d *DotWriter) Header() error {
	_, err := fmt.Fprintf(d.w, "%s\ndigraph call_graph {\n\tgraph [overlap=false];\n", RenderHint)
	return err
}

// Footer closes the digraph block.
func (d *DotWriter) Footer() error {
	_, err := io.WriteString(d.w, "}\n")
	return err
}

// GenerateDOT produces a complete DOT document from a graph store. Functions
// come first as node declarations, then call edges.
func GenerateDOT(ctx context.Context, store graph.Store) (string, error) {
	functions, err := store.Functions(ctx)
	if err != nil {
		return "", fmt.Errorf("get functions: %w", err)
	}
	edges, err := store.Edges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	var sb strings.Builder
	d := NewDotWriter(&sb)
	if err := d.Header(); err != nil {
		return "", err
	}
	for _, f := range functions {
		if err := d.Node(f.Name); err != nil {
			return "", err
		}
	}
	for _, e := range edges {
		if err := d.Edge(e.Caller, e.Callee); err != nil {
			return "", err
		}
	}
	if err := d.Footer(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
