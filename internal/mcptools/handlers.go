package mcptools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/callflow/internal/export"
	"github.com/dusk-indust/callflow/internal/graph"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CallGraphService holds the graph store used by the MCP tool handlers.
type CallGraphService struct {
	store graph.Store
}

// NewCallGraphService creates a CallGraphService over the given store.
func NewCallGraphService(store graph.Store) *CallGraphService {
	return &CallGraphService{store: store}
}

// BuildGraph walks a repository, scans and extracts every .go file into the
// graph store, and returns graph statistics. Unreadable or malformed files
// are reported as diagnostics, not failures.
func (s *CallGraphService) BuildGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildGraphInput,
) (*mcp.CallToolResult, BuildGraphOutput, error) {
	if input.RepoPath == "" {
		return nil, BuildGraphOutput{}, fmt.Errorf("repoPath is required")
	}

	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, BuildGraphOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	excludeSet := make(map[string]bool, len(input.ExcludeDirs))
	for _, d := range input.ExcludeDirs {
		excludeSet[d] = true
	}

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("init schema: %w", err)
	}

	var paths []string
	walkErr := filepath.WalkDir(input.RepoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || excludeSet[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("walk: %w", walkErr)
	}

	var diag bytes.Buffer
	runner := graph.NewRunner(graph.NewStoreSink(ctx, s.store), &diag)
	if err := runner.Run(paths); err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("extract: %w", err)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("stats: %w", err)
	}

	out := BuildGraphOutput{
		Stats:       *stats,
		FilesParsed: len(paths),
	}
	if d := strings.TrimSpace(diag.String()); d != "" {
		out.Diagnostics = strings.Split(d, "\n")
	}
	return nil, out, nil
}

// QueryFunctions searches functions by name substring.
func (s *CallGraphService) QueryFunctions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryFunctionsInput,
) (*mcp.CallToolResult, QueryFunctionsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	functions, err := s.store.QueryFunctions(ctx, input.Query, limit)
	if err != nil {
		return nil, QueryFunctionsOutput{}, fmt.Errorf("query functions: %w", err)
	}

	return nil, QueryFunctionsOutput{
		Functions: functions,
		Total:     len(functions),
	}, nil
}

// GetCalls traverses the call graph from a function in the requested
// direction.
func (s *CallGraphService) GetCalls(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCallsInput,
) (*mcp.CallToolResult, GetCallsOutput, error) {
	if input.Function == "" {
		return nil, GetCallsOutput{}, fmt.Errorf("function is required")
	}

	direction := graph.DirectionCallees
	switch strings.ToLower(input.Direction) {
	case "", string(graph.DirectionCallees):
	case string(graph.DirectionCallers):
		direction = graph.DirectionCallers
	default:
		return nil, GetCallsOutput{}, fmt.Errorf("unknown direction: %s", input.Direction)
	}

	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	chains, err := s.store.Calls(ctx, input.Function, direction, maxDepth)
	if err != nil {
		return nil, GetCallsOutput{}, fmt.Errorf("traverse: %w", err)
	}

	return nil, GetCallsOutput{Chains: chains}, nil
}

// ExportGraph renders the stored call graph as a DOT, Mermaid, or JSON
// document.
func (s *CallGraphService) ExportGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportGraphInput,
) (*mcp.CallToolResult, ExportGraphOutput, error) {
	format := strings.ToLower(input.Format)
	if format == "" {
		format = "dot"
	}

	var document string
	switch format {
	case "dot":
		doc, err := export.GenerateDOT(ctx, s.store)
		if err != nil {
			return nil, ExportGraphOutput{}, fmt.Errorf("export dot: %w", err)
		}
		document = doc
	case "mermaid":
		doc, err := export.GenerateMermaid(ctx, s.store)
		if err != nil {
			return nil, ExportGraphOutput{}, fmt.Errorf("export mermaid: %w", err)
		}
		document = doc
	case "json":
		snapshot, err := export.ExportCallGraph(ctx, s.store)
		if err != nil {
			return nil, ExportGraphOutput{}, fmt.Errorf("export json: %w", err)
		}
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, ExportGraphOutput{}, fmt.Errorf("marshal JSON: %w", err)
		}
		document = string(data)
	default:
		return nil, ExportGraphOutput{}, fmt.Errorf("unknown format: %s", input.Format)
	}

	return nil, ExportGraphOutput{Format: format, Document: document}, nil
}
