package ast_test

import (
	"testing"

	"github.com/avscript/avscript/ast"
	"github.com/avscript/avscript/parser"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// roundTrip parses src, prints it, reparses the printed text, and compares
// the two printed forms — spec.md §8's "print -> reparse -> equal modulo
// node identity" invariant. Equal printed text is a sufficient proxy for
// tree equality since Print is a faithful, deterministic serialization.
func roundTrip(t *testing.T, src string) string {
	t.Helper()
	e, err := parser.ParseExpression(src)
	require.NoError(t, err)
	printed := ast.Print(e)

	reparsed, err := parser.ParseExpression(printed)
	require.NoError(t, err, "printed text %q failed to reparse", printed)
	require.Equal(t, printed, ast.Print(reparsed))
	return printed
}

func TestPrinterRoundTripArithmetic(t *testing.T) {
	roundTrip(t, "1 + 2 * 3")
	roundTrip(t, "(1 + 2) * 3")
	roundTrip(t, "2 ** 3 ** 2")
}

func TestPrinterRoundTripCallsAndDots(t *testing.T) {
	roundTrip(t, "a.b.c(1, 2)")
	roundTrip(t, "xs[0][1]")
	roundTrip(t, "obj.method(x)[0]")
}

func TestPrinterRoundTripTernaryAndAssignment(t *testing.T) {
	roundTrip(t, "a ? b : c ? d : e")
	roundTrip(t, "x = y = 1")
}

func TestPrinterRoundTripUnaryAndLambda(t *testing.T) {
	roundTrip(t, "-x + !y")
	roundTrip(t, "lambda (a, b) -> a + b end")
}

func TestPrinterRoundTripStringAndRegex(t *testing.T) {
	roundTrip(t, `"hello"`)
	roundTrip(t, "x =~ /^[a-z]+$/")
}

func TestPrinterSnapshotsStableOutput(t *testing.T) {
	exprs := []string{
		"1 + 2 * 3 - 4 / 2",
		"a.b(c, d).e[0]",
		"x > 1 && y < 2 || z == 3",
		"cond ? a : b",
	}
	for _, src := range exprs {
		e, err := parser.ParseExpression(src)
		require.NoError(t, err)
		snaps.MatchSnapshot(t, src, ast.Print(e))
	}
}
