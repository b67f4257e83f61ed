package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCallGraphMCPServer creates an MCP server with all 4 call-graph tools
// registered.
func NewCallGraphMCPServer(svc *CallGraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "callflow",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_graph",
		Description: "Index a repository and build its call graph. Walks the file tree, scans every Go file with the heuristic extractor, and records function declarations and call edges.",
	}, svc.BuildGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_functions",
		Description: "Search for declared functions by name substring match, with an optional result limit.",
	}, svc.QueryFunctions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_calls",
		Description: "Traverse the call graph from a function, following callers or callees up to the specified depth. Returns call chains.",
	}, svc.GetCalls)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_graph",
		Description: "Render the stored call graph as a DOT, Mermaid, or JSON document.",
	}, svc.ExportGraph)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunMCPServer starts an HTTP server exposing the call-graph MCP tools.
func RunMCPServer(ctx context.Context, svc *CallGraphService, addr string) error {
	server := NewCallGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
