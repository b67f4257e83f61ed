package graph

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dusk-indust/callflow/internal/scan"
)

// Runner drives scanning and extraction over a sequence of input files. One
// file is scanned and extracted to completion before the next begins; the
// shared Extractor carries the dedup sets across the whole run.
//
// Failure policy is skip-and-continue: a file that cannot be read, has the
// wrong extension, or trips a lexical error is reported to ErrOut and
// skipped, and the remaining files are still processed. Only sink write
// failures abort the run.
type Runner struct {
	extractor *Extractor
	errOut    io.Writer
}

// NewRunner returns a Runner emitting statements to sink and diagnostics to
// errOut. Diagnostics go to a channel distinct from the statement output so
// successful output stays pipeable.
func NewRunner(sink Sink, errOut io.Writer) *Runner {
	return &Runner{
		extractor: NewExtractor(sink),
		errOut:    errOut,
	}
}

// Run processes each path in order. It returns an error only when the output
// sink fails; per-file problems are diagnostics.
func (r *Runner) Run(paths []string) error {
	for _, path := range paths {
		if err := r.runFile(path); err != nil {
			return err
		}
	}
	return nil
}

// runFile scans and extracts a single file. Recoverable problems become
// diagnostics and a nil return.
func (r *Runner) runFile(path string) error {
	if !strings.HasSuffix(path, ".go") {
		fmt.Fprintf(r.errOut, "Error: incorrect file extension on %s\n", path)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: cannot open %s\n", path)
		return nil
	}
	defer f.Close()

	if err := r.extractor.Process(scan.New(f, path)); err != nil {
		var lex *scan.LexError
		if errors.As(err, &lex) {
			fmt.Fprintf(r.errOut, "Error: %v\n", lex)
			return nil
		}
		return err
	}
	return nil
}
