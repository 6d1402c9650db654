package parser

import (
	"fmt"

	"github.com/avscript/avscript/lexer"
)

// SyntaxError is raised by either parser stage (Pratt expression core or
// script statement parser) on an expected-but-missing token, carrying the
// offending token so callers (notably the static analyzer, spec.md §4.6)
// can surface its line.
type SyntaxError struct {
	Token   lexer.Token
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s (got %s)", e.Token.Line, e.Message, e.Token)
}
