// Package render turns a DOT document into an image by shelling out to the
// Graphviz dot tool.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultEngine is the Graphviz layout engine used when none is configured.
// sfdp handles large call graphs better than the default hierarchical
// layout.
const DefaultEngine = "sfdp"

// PNG renders dotSource to a PNG at outPath using the given layout engine.
// The dot binary must be on PATH; a missing binary surfaces as a wrapped
// exec error.
func PNG(ctx context.Context, dotSource, outPath, engine string) error {
	if engine == "" {
		engine = DefaultEngine
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", outPath, err)
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, "dot", "-K"+engine, "-Tpng")
	cmd.Stdin = strings.NewReader(dotSource)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("render: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("render: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("render: start dot: %w", err)
	}

	// Drain both pipes concurrently so dot never blocks on a full buffer.
	var diag bytes.Buffer
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := io.Copy(out, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&diag, stderr)
		return err
	})

	copyErr := g.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		if msg := strings.TrimSpace(diag.String()); msg != "" {
			return fmt.Errorf("render: dot failed: %s: %w", msg, waitErr)
		}
		return fmt.Errorf("render: dot failed: %w", waitErr)
	}
	if copyErr != nil {
		return fmt.Errorf("render: copy output: %w", copyErr)
	}
	return nil
}
