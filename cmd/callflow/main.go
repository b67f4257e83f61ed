package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dusk-indust/callflow/internal/config"
	"github.com/dusk-indust/callflow/internal/export"
	"github.com/dusk-indust/callflow/internal/filter"
	"github.com/dusk-indust/callflow/internal/graph"
	"github.com/dusk-indust/callflow/internal/mcptools"
	"github.com/dusk-indust/callflow/internal/render"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Source   string
	Filter   string
	Render   string
	Engine   string
	ServeMCP bool
	HTTPAddr string
	Verbose  bool
	Version  bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("callflow", flag.ContinueOnError)
	fs.StringVar(&flags.Source, "source", "", "existing graph file (.gv or .dot) to re-filter instead of scanning")
	fs.StringVar(&flags.Filter, "filter", "", "comma-separated function names; keep only statements mentioning them")
	fs.StringVar(&flags.Render, "render", "", "render the graph to a PNG at this path")
	fs.StringVar(&flags.Engine, "engine", "", "graphviz layout engine (default sfdp)")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	fs.StringVar(&flags.HTTPAddr, "http", "", "serve MCP over HTTP at this address instead of stdio")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if flags.ServeMCP || flags.HTTPAddr != "" {
		return serveMCP(flags)
	}

	var lines []string
	if flags.Source != "" {
		lines, err = sourceStatements(flags.Source)
	} else {
		paths := fs.Args()
		if len(paths) == 0 {
			return fmt.Errorf("no input files; pass .go files or -source graph.gv")
		}
		lines, err = scanStatements(paths)
	}
	if err != nil {
		return err
	}

	lines = filter.Names(lines, mergeFilters(flags.Filter, cfg.Filters))
	doc := composeDocument(lines)

	if flags.Render != "" {
		engine := flags.Engine
		if engine == "" {
			engine = cfg.Engine
		}
		return render.PNG(context.Background(), doc, flags.Render, engine)
	}

	fmt.Print(doc)
	return nil
}

// serveMCP runs the MCP server over stdio or HTTP, backed by the
// project-local graph store.
func serveMCP(flags cliFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(".")
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	svc := mcptools.NewCallGraphService(store)
	if flags.HTTPAddr != "" {
		return mcptools.RunMCPServer(ctx, svc, flags.HTTPAddr)
	}
	return mcptools.RunMCPServerStdio(ctx, mcptools.NewCallGraphMCPServer(svc))
}

// scanStatements runs the extraction pipeline over the given Go files and
// returns the emitted graph statements. Per-file problems are reported on
// stderr; the run keeps going.
func scanStatements(paths []string) ([]string, error) {
	var buf bytes.Buffer
	runner := graph.NewRunner(export.NewDotWriter(&buf), os.Stderr)
	if err := runner.Run(paths); err != nil {
		return nil, err
	}
	return splitLines(buf.String()), nil
}

// sourceStatements reads an existing graph document and strips its wrapper,
// leaving only node and edge statements.
func sourceStatements(path string) ([]string, error) {
	if !strings.HasSuffix(path, ".gv") && !strings.HasSuffix(path, ".dot") {
		return nil, fmt.Errorf("incorrect file extension on %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s", path)
	}
	return filter.Statements(splitLines(string(data))), nil
}

// mergeFilters combines the -filter flag value with config-file filters.
func mergeFilters(flagValue string, cfgFilters []string) []string {
	var names []string
	for _, n := range strings.Split(flagValue, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return append(names, cfgFilters...)
}

// composeDocument wraps statement lines in the DOT document frame.
func composeDocument(lines []string) string {
	var sb strings.Builder
	w := export.NewDotWriter(&sb)
	_ = w.Header()
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	_ = w.Footer()
	return sb.String()
}

// splitLines splits s on newlines, dropping the trailing empty element.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
