package lexer

import "fmt"

// LexError is raised for unterminated string/regex literals and illegal
// object-access syntax (a '.' not followed by an identifier start). It
// carries the line and a printable rendering of the offending character,
// per spec.md §4.1's error semantics.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d: %s", e.Line, e.Message)
}

func printableRune(b byte) string {
	if b == 0 {
		return "<EOF>"
	}
	if b < 0x20 || b == 0x7f {
		return fmt.Sprintf("\\x%02x", b)
	}
	return string(b)
}
