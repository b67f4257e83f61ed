package scan

import "fmt"

// LexError reports a character the scanner cannot classify. It is fatal to
// the scan of the current input unit.
type LexError struct {
	Char   byte
	Line   int
	Source string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("scan: unexpected character %q on line %d in %s", e.Char, e.Line, e.Source)
}

// TruncatedLiteralError reports that the input ended inside a quoted literal
// or block comment before its terminator was found. It is non-fatal: the
// partial lexeme is returned alongside it, and callers may treat the
// condition as end of input.
type TruncatedLiteralError struct {
	Delim  string
	Line   int
	Source string
}

func (e *TruncatedLiteralError) Error() string {
	return fmt.Sprintf("scan: input ended before closing %q opened on line %d in %s", e.Delim, e.Line, e.Source)
}
