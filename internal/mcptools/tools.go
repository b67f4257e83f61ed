package mcptools

import "github.com/dusk-indust/callflow/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input. The MCP Go
// SDK auto-generates JSON schemas from struct tags.

// BuildGraphInput is the input for the build_graph MCP tool.
type BuildGraphInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the repository to index"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from indexing (e.g. vendor, testdata)"`
}

// BuildGraphOutput is the result of the build_graph MCP tool.
type BuildGraphOutput struct {
	Stats       graph.GraphStats `json:"stats"`
	FilesParsed int              `json:"filesParsed"`
	Diagnostics []string         `json:"diagnostics,omitempty"`
}

// QueryFunctionsInput is the input for the query_functions MCP tool.
type QueryFunctionsInput struct {
	Query string `json:"query" jsonschema:"search query for function names (substring match)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryFunctionsOutput is the result of the query_functions MCP tool.
type QueryFunctionsOutput struct {
	Functions []graph.FunctionNode `json:"functions"`
	Total     int                  `json:"total"`
}

// GetCallsInput is the input for the get_calls MCP tool.
type GetCallsInput struct {
	Function  string `json:"function" jsonschema:"function name to start from"`
	Direction string `json:"direction,omitempty" jsonschema:"callers (who calls it) or callees (what it calls). Default: callees"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetCallsOutput is the result of the get_calls MCP tool.
type GetCallsOutput struct {
	Chains []graph.CallChain `json:"chains"`
}

// ExportGraphInput is the input for the export_graph MCP tool.
type ExportGraphInput struct {
	Format string `json:"format,omitempty" jsonschema:"output format: dot, mermaid, or json. Default: dot"`
}

// ExportGraphOutput is the result of the export_graph MCP tool.
type ExportGraphOutput struct {
	Format   string `json:"format"`
	Document string `json:"document"`
}
