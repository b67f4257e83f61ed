//go:build cgo

package main

import (
	"path/filepath"

	"github.com/dusk-indust/callflow/internal/graph"
)

// openStore opens the persistent Kuzu-backed graph store under the project's
// .callflow directory, creating it on first use.
func openStore(projectRoot string) (graph.Store, error) {
	return graph.NewKuzuFileStore(filepath.Join(projectRoot, ".callflow", "graph"))
}
