package mcptools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dusk-indust/callflow/internal/graph"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports. It returns the connected client session.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc := NewCallGraphService(graph.NewMemStore())
	server := NewCallGraphMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session
}

// fixtureAbsPath returns the absolute path of the sample Go project.
func fixtureAbsPath(t *testing.T) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("..", "..", "testdata", "fixtures", "go_project"))
	require.NoError(t, err)
	return abs
}

// callTool invokes an MCP tool and unmarshals its structured content into
// out.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args any, out any) {
	t.Helper()
	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "%s should not return an error", name)
	require.NotNil(t, result.StructuredContent, "expected structured content from %s", name)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	require.Len(t, result.Tools, 4, "expected 4 registered tools")

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	expected := []string{
		"build_graph",
		"export_graph",
		"get_calls",
		"query_functions",
	}
	assert.Equal(t, expected, names)
}

func TestMCPBuildGraph(t *testing.T) {
	session := setupServerClient(t)

	var output BuildGraphOutput
	callTool(t, session, "build_graph", BuildGraphInput{RepoPath: fixtureAbsPath(t)}, &output)

	assert.Equal(t, 2, output.FilesParsed, "fixture has 2 go files")
	assert.Equal(t, 4, output.Stats.FunctionCount, "NewInventory, seed, Run, lookup")
	assert.Equal(t, 6, output.Stats.CallCount)
	assert.Empty(t, output.Diagnostics)
}

func TestMCPBuildGraphRequiresRepoPath(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "build_graph",
		Arguments: BuildGraphInput{},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPQueryFunctions(t *testing.T) {
	session := setupServerClient(t)

	var build BuildGraphOutput
	callTool(t, session, "build_graph", BuildGraphInput{RepoPath: fixtureAbsPath(t)}, &build)

	var output QueryFunctionsOutput
	callTool(t, session, "query_functions", QueryFunctionsInput{Query: "inventory", Limit: 10}, &output)

	require.Equal(t, 1, output.Total)
	assert.Equal(t, "NewInventory", output.Functions[0].Name)
}

func TestMCPGetCalls(t *testing.T) {
	session := setupServerClient(t)

	var build BuildGraphOutput
	callTool(t, session, "build_graph", BuildGraphInput{RepoPath: fixtureAbsPath(t)}, &build)

	var output GetCallsOutput
	callTool(t, session, "get_calls", GetCallsInput{Function: "NewInventory", Direction: "callees"}, &output)

	reached := map[string]bool{}
	for _, c := range output.Chains {
		reached[c.Nodes[len(c.Nodes)-1]] = true
	}
	assert.True(t, reached["seed"])
	assert.True(t, reached["rand"], "transitive callee via seed")
}

func TestMCPGetCallsUnknownDirection(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_calls",
		Arguments: GetCallsInput{Function: "x", Direction: "sideways"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPExportGraph(t *testing.T) {
	session := setupServerClient(t)

	var build BuildGraphOutput
	callTool(t, session, "build_graph", BuildGraphInput{RepoPath: fixtureAbsPath(t)}, &build)

	var dot ExportGraphOutput
	callTool(t, session, "export_graph", ExportGraphInput{}, &dot)
	assert.Equal(t, "dot", dot.Format)
	assert.Contains(t, dot.Document, "digraph call_graph {")
	assert.Contains(t, dot.Document, `"Run" -> "lookup";`)

	var mermaid ExportGraphOutput
	callTool(t, session, "export_graph", ExportGraphInput{Format: "mermaid"}, &mermaid)
	assert.Contains(t, mermaid.Document, "graph TD")

	var asJSON ExportGraphOutput
	callTool(t, session, "export_graph", ExportGraphInput{Format: "json"}, &asJSON)
	assert.Contains(t, asJSON.Document, `"functionCount": 4`)
}
