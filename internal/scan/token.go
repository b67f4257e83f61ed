package scan

// Kind classifies tokens produced by the Scanner.
type Kind int

const (
	KindEOF        Kind = iota // end of input
	KindIdentifier             // [A-Za-z_][A-Za-z0-9_]*
	KindKeyword                // Go reserved word
	KindNumber                 // [0-9]+(.[0-9]+)?
	KindLParen                 // (
	KindRParen                 // )
	KindLBrace                 // {
	KindRBrace                 // }
	KindEqual                  // =
	KindQuote                  // quoted literal interior
	KindSymbol                 // run of other punctuation
)

// kindNames is indexed by Kind.
var kindNames = [...]string{
	"EOF", "Identifier", "Keyword", "Number", "LParen", "RParen",
	"LBrace", "RBrace", "Equal", "Quote", "Symbol",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Token is a single lexical unit. Immutable once produced.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// keywords is the closed set of Go reserved words. An identifier run matching
// one of these is classified KindKeyword instead of KindIdentifier.
var keywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// IsKeyword reports whether s is a Go reserved word.
func IsKeyword(s string) bool {
	return keywords[s]
}

// symbols is the punctuation set consumed into KindSymbol runs. Characters
// outside this set (and all other token rules) trigger a LexError.
var symbols = [256]bool{
	'+': true, '-': true, ':': true, '?': true, '!': true, '<': true,
	'>': true, '*': true, '/': true, '%': true, '&': true, '|': true,
	'^': true, '~': true, '.': true, ',': true, '[': true, ']': true,
	'#': true, '@': true, '$': true, ';': true, '\\': true,
}
