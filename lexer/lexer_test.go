package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, src string) []Kind {
	t.Helper()
	l := New(src)
	toks, err := l.All()
	require.NoError(t, err)
	out := make([]Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexerOperators(t *testing.T) {
	require.Equal(t, []Kind{NUMBER, PLUS, NUMBER, EOF}, kinds(t, "1 + 2"))
	require.Equal(t, []Kind{SHR, EOF}, kinds(t, ">>"))
	require.Equal(t, []Kind{USHR, EOF}, kinds(t, ">>>"))
	require.Equal(t, []Kind{SHR, ASSIGN, EOF}, kinds(t, ">> ="))
	require.Equal(t, []Kind{POW, EOF}, kinds(t, "**"))
	require.Equal(t, []Kind{ARROW, EOF}, kinds(t, "->"))
	require.Equal(t, []Kind{MATCH, EOF}, kinds(t, "=~"))
}

func TestLexerSlashDisambiguation(t *testing.T) {
	// after a number, identifier, ')' or ']': division.
	require.Equal(t, []Kind{NUMBER, SLASH, NUMBER, EOF}, kinds(t, "6 / 2"))
	require.Equal(t, []Kind{IDENT, SLASH, IDENT, EOF}, kinds(t, "a / b"))
	require.Equal(t, []Kind{LPAREN, IDENT, RPAREN, SLASH, NUMBER, EOF}, kinds(t, "(x) / 2"))
	require.Equal(t, []Kind{IDENT, LBRACKET, NUMBER, RBRACKET, SLASH, NUMBER, EOF}, kinds(t, "a[0] / 2"))
	// otherwise: regex literal.
	require.Equal(t, []Kind{REGEX, EOF}, kinds(t, "/abc/"))
	require.Equal(t, []Kind{ASSIGN, REGEX, EOF}, kinds(t, "= /abc/"))
	require.Equal(t, []Kind{LPAREN, REGEX, EOF}, kinds(t, "(/abc/"))
}

func TestLexerSlashAfterKeywordOrStringStartsRegex(t *testing.T) {
	// §4.1 enumerates exactly number, identifier, ')' and ']' as the
	// division-triggering previous tokens; true/false/nil/string are not
	// in that set, so a following '/' starts a regex literal.
	l := New("true / 2")
	_, err := l.All()
	require.Error(t, err)

	l = New(`"s" / 2`)
	_, err = l.All()
	require.Error(t, err)
}

func TestLexerDotChain(t *testing.T) {
	require.Equal(t, []Kind{IDENT, DOT, IDENT, DOT, IDENT, EOF}, kinds(t, "a.b.c"))
}

func TestLexerNumberForms(t *testing.T) {
	l := New("42 3.14 1e10 2.5e-3 0xFF 7N 3.5M .5")
	toks, err := l.All()
	require.NoError(t, err)
	var lexemes []string
	for _, tk := range toks {
		if tk.Kind == EOF {
			continue
		}
		require.Equal(t, NUMBER, tk.Kind)
		lexemes = append(lexemes, tk.Lexeme)
	}
	require.Equal(t, []string{"42", "3.14", "1e10", "2.5e-3", "0xFF", "7N", "3.5M", ".5"}, lexemes)
}

func TestLexerStringEscapesDeferred(t *testing.T) {
	l := New(`"a\"b"`)
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, STRING, tok.Kind)
	require.Equal(t, `a\"b`, tok.Lexeme)
}

func TestLexerLineComment(t *testing.T) {
	require.Equal(t, []Kind{NUMBER, EOF}, kinds(t, "## a comment\n1"))
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	_, err := l.Next()
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexerIllegalDot(t *testing.T) {
	l := New(". 1")
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexerLineTracking(t *testing.T) {
	l := New("a\nb\nc")
	var lines []int
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		lines = append(lines, tok.Line)
	}
	require.Equal(t, []int{1, 2, 3}, lines)
}

func TestLexerKeywords(t *testing.T) {
	require.Equal(t, []Kind{KW_IF, KW_ELSIF, KW_ELSE, KW_WHILE, KW_FOR, KW_IN,
		KW_BREAK, KW_CONTINUE, KW_RETURN, KW_TRY, KW_CATCH, KW_FINALLY,
		KW_THROW, KW_FN, KW_LAMBDA, KW_END, KW_LET, KW_NEW, KW_USE, EOF},
		kinds(t, "if elsif else while for in break continue return try catch finally throw fn lambda end let new use"))
}
