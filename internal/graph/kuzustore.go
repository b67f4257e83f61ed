//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself for new
// databases. This enables call-graph indexes that survive across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema. The node
// table must precede the relationship table.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Function(
		name STRING,
		PRIMARY KEY(name)
	)`,
	`CREATE REL TABLE IF NOT EXISTS CALLS(FROM Function TO Function)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddFunction inserts a Function node. Callee names appear in CALLS edges
// before (or without) being declared, so the node is created on first
// reference from either side.
func (s *KuzuStore) AddFunction(_ context.Context, node FunctionNode) error {
	return s.exec(
		"MERGE (f:Function {name: $name})",
		map[string]any{"name": node.Name},
	)
}

// AddCall inserts a CALLS relationship, creating endpoint nodes as needed.
func (s *KuzuStore) AddCall(ctx context.Context, edge CallEdge) error {
	if err := s.AddFunction(ctx, FunctionNode{Name: edge.Caller}); err != nil {
		return err
	}
	if err := s.AddFunction(ctx, FunctionNode{Name: edge.Callee}); err != nil {
		return err
	}
	return s.exec(
		`MATCH (a:Function {name: $src}), (b:Function {name: $dst})
		 CREATE (a)-[:CALLS]->(b)`,
		map[string]any{"src": edge.Caller, "dst": edge.Callee},
	)
}

// ---------- Read operations ----------

// GetFunction retrieves a single Function node by name, or nil if not found.
func (s *KuzuStore) GetFunction(_ context.Context, name string) (*FunctionNode, error) {
	rows, err := s.query(
		"MATCH (f:Function {name: $name}) RETURN f.name",
		map[string]any{"name": name},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &FunctionNode{Name: toString(rows[0][0])}, nil
}

// QueryFunctions returns functions whose name contains the query string.
func (s *KuzuStore) QueryFunctions(_ context.Context, queryStr string, limit int) ([]FunctionNode, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.query(
		`MATCH (f:Function) WHERE f.name CONTAINS $q
		 RETURN f.name ORDER BY f.name LIMIT $lim`,
		map[string]any{"q": queryStr, "lim": int64(limit)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]FunctionNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, FunctionNode{Name: toString(r[0])})
	}
	return out, nil
}

// Functions returns all Function nodes ordered by name.
func (s *KuzuStore) Functions(_ context.Context) ([]FunctionNode, error) {
	rows, err := s.query("MATCH (f:Function) RETURN f.name ORDER BY f.name", nil)
	if err != nil {
		return nil, err
	}
	out := make([]FunctionNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, FunctionNode{Name: toString(r[0])})
	}
	return out, nil
}

// Edges returns all CALLS relationships.
func (s *KuzuStore) Edges(_ context.Context) ([]CallEdge, error) {
	rows, err := s.query(
		"MATCH (a:Function)-[:CALLS]->(b:Function) RETURN a.name, b.name",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]CallEdge, 0, len(rows))
	for _, r := range rows {
		out = append(out, CallEdge{Caller: toString(r[0]), Callee: toString(r[1])})
	}
	return out, nil
}

// ---------- Graph traversal ----------

// Calls performs a BFS over CALLS edges starting from name in the given
// direction, one Cypher hop query at a time.
func (s *KuzuStore) Calls(_ context.Context, name string, dir Direction, maxDepth int) ([]CallChain, error) {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	type bfsEntry struct {
		path  []string
		depth int
	}
	visited := map[string]bool{name: true}
	queue := []bfsEntry{{path: []string{name}, depth: 0}}
	var chains []CallChain

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		tip := cur.path[len(cur.path)-1]
		neighbors, err := s.callNeighbors(tip, dir)
		if err != nil {
			return nil, err
		}
		for _, nb := range neighbors {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			newPath := make([]string, len(cur.path)+1)
			copy(newPath, cur.path)
			newPath[len(cur.path)] = nb
			chains = append(chains, CallChain{
				Nodes: newPath,
				Depth: cur.depth + 1,
			})
			queue = append(queue, bfsEntry{path: newPath, depth: cur.depth + 1})
		}
	}
	return chains, nil
}

// callNeighbors returns immediate neighbors along CALLS edges.
func (s *KuzuStore) callNeighbors(name string, dir Direction) ([]string, error) {
	var cypher string
	switch dir {
	case DirectionCallees:
		cypher = "MATCH (a:Function {name: $name})-[:CALLS]->(b:Function) RETURN b.name"
	case DirectionCallers:
		cypher = "MATCH (a:Function)-[:CALLS]->(b:Function {name: $name}) RETURN a.name"
	default:
		return nil, fmt.Errorf("kuzu: unknown direction: %s", dir)
	}
	rows, err := s.query(cypher, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, toString(r[0]))
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of the Function and CALLS tables.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	functions, err := s.countRows("MATCH (n:Function) RETURN count(n)")
	if err != nil {
		return nil, err
	}
	calls, err := s.countRows("MATCH ()-[r:CALLS]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	return &GraphStats{FunctionCount: functions, CallCount: calls}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countRows runs a single-value count query.
func (s *KuzuStore) countRows(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string). These
// helpers coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
