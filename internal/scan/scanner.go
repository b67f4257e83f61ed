package scan

import (
	"bufio"
	"io"
	"strings"
)

// Scanner converts a character stream into a lazy sequence of tokens. One
// Scanner is created per input unit. After a KindEOF token is produced,
// further calls to Next are undefined.
//
// Lookahead is bounded: the scanner peeks at most 2 bytes ahead (to tell a
// comment opener from a lone slash) and never consumes input it has only
// peeked at.
type Scanner struct {
	r      *bufio.Reader
	source string
	line   int
}

// New returns a Scanner reading from r. source names the input unit in
// diagnostics, usually a file path.
func New(r io.Reader, source string) *Scanner {
	return &Scanner{r: bufio.NewReader(r), source: source, line: 1}
}

// Next produces the next token. Whitespace and comments are consumed
// silently. A *LexError is fatal to this unit. A *TruncatedLiteralError is
// returned alongside the partial token; callers may treat it as end of
// input.
func (s *Scanner) Next() (Token, error) {
	for {
		b, ok := s.peek()
		if !ok {
			return Token{Kind: KindEOF, Line: s.line}, nil
		}

		switch {
		case isSpace(b):
			s.advance()
			if b == '\n' {
				s.line++
			}

		case isWordStart(b):
			word := s.readWord()
			kind := KindIdentifier
			if IsKeyword(word) {
				kind = KindKeyword
			}
			return Token{Kind: kind, Lexeme: word, Line: s.line}, nil

		case isDigit(b):
			return Token{Kind: KindNumber, Lexeme: s.readNumber(), Line: s.line}, nil

		case b == '(':
			s.advance()
			return Token{Kind: KindLParen, Lexeme: "(", Line: s.line}, nil

		case b == ')':
			s.advance()
			return Token{Kind: KindRParen, Lexeme: ")", Line: s.line}, nil

		case b == '{':
			s.advance()
			return Token{Kind: KindLBrace, Lexeme: "{", Line: s.line}, nil

		case b == '}':
			s.advance()
			return Token{Kind: KindRBrace, Lexeme: "}", Line: s.line}, nil

		case b == '=':
			s.advance()
			return Token{Kind: KindEqual, Lexeme: "=", Line: s.line}, nil

		case b == '\'' || b == '"' || b == '`':
			s.advance()
			start := s.line
			body, terminated := s.readLiteral(b)
			tok := Token{Kind: KindQuote, Lexeme: body, Line: start}
			if !terminated {
				return tok, &TruncatedLiteralError{Delim: string(b), Line: start, Source: s.source}
			}
			return tok, nil

		// Comment handling must precede the generic symbol rule, or the
		// slashes would be swallowed into a symbol run.
		case b == '/' && s.peekAt(1) == '/':
			s.skipLineComment()

		case b == '/' && s.peekAt(1) == '*':
			start := s.line
			if !s.skipBlockComment() {
				return Token{Kind: KindEOF, Line: s.line},
					&TruncatedLiteralError{Delim: "*/", Line: start, Source: s.source}
			}

		case symbols[b]:
			return Token{Kind: KindSymbol, Lexeme: s.readSymbols(), Line: s.line}, nil

		default:
			return Token{}, &LexError{Char: b, Line: s.line, Source: s.source}
		}
	}
}

// ---------- Lookahead ----------

// peek returns the next byte without consuming it. ok is false at EOF.
func (s *Scanner) peek() (byte, bool) {
	buf, err := s.r.Peek(1)
	if err != nil || len(buf) == 0 {
		return 0, false
	}
	return buf[0], true
}

// peekAt returns the byte i positions ahead without consuming, or 0 if the
// input ends before it.
func (s *Scanner) peekAt(i int) byte {
	buf, _ := s.r.Peek(i + 1)
	if len(buf) <= i {
		return 0
	}
	return buf[i]
}

// advance consumes one byte. Callers must have peeked it first.
func (s *Scanner) advance() {
	s.r.ReadByte()
}

// ---------- Run readers ----------

func (s *Scanner) readWord() string {
	var sb strings.Builder
	for {
		b, ok := s.peek()
		if !ok || (!isWordStart(b) && !isDigit(b)) {
			return sb.String()
		}
		s.advance()
		sb.WriteByte(b)
	}
}

func (s *Scanner) readNumber() string {
	var sb strings.Builder
	for {
		b, ok := s.peek()
		if !ok || (!isDigit(b) && b != '.') {
			return sb.String()
		}
		s.advance()
		sb.WriteByte(b)
	}
}

func (s *Scanner) readSymbols() string {
	var sb strings.Builder
	for {
		b, ok := s.peek()
		if !ok || !symbols[b] {
			return sb.String()
		}
		s.advance()
		sb.WriteByte(b)
	}
}

// ---------- Delimited scans ----------

// readLiteral consumes characters up to and including the first occurrence
// of delim that is not escaped. Escaping is decided by the parity of the
// consecutive backslashes immediately preceding the delimiter: odd means
// escaped. The returned body excludes the closing delimiter but keeps any
// escaped occurrences and trailing escape sequence. terminated is false when
// the input ends first.
func (s *Scanner) readLiteral(delim byte) (body string, terminated bool) {
	var sb strings.Builder
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return sb.String(), false
		}
		if b == '\n' {
			s.line++
		}
		if b == delim && !trailingEscape(sb.String()) {
			return sb.String(), true
		}
		sb.WriteByte(b)
	}
}

// trailingEscape reports whether the body ends in an odd number of
// backslashes, which would escape the next character.
func trailingEscape(body string) bool {
	count := 0
	for i := len(body) - 1; i >= 0 && body[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

// skipLineComment consumes "//" through the end of line (or input).
func (s *Scanner) skipLineComment() {
	s.advance()
	s.advance()
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return
		}
		if b == '\n' {
			s.line++
			return
		}
	}
}

// skipBlockComment consumes "/*" through the first "*/". It is a plain
// substring scan: comments have no escape semantics, so a backslash before
// the terminator does not extend the comment. Returns false if the input
// ends before the terminator.
func (s *Scanner) skipBlockComment() bool {
	s.advance()
	s.advance()
	var prev byte
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return false
		}
		if b == '\n' {
			s.line++
		}
		if prev == '*' && b == '/' {
			return true
		}
		prev = b
	}
}

// ---------- Character classes ----------

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isWordStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
