package parser

import (
	"testing"

	"github.com/avscript/avscript/ast"
	"github.com/stretchr/testify/require"
)

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := ParseExpression(src)
	require.NoError(t, err)
	return e
}

func TestPrecedenceLeftAssociative(t *testing.T) {
	// + and * are both left-associative; * binds tighter.
	require.Equal(t, "(1 + (2 * 3))", ast.Print(mustExpr(t, "1 + 2 * 3")))
	require.Equal(t, "((1 - 2) - 3)", ast.Print(mustExpr(t, "1 - 2 - 3")))
	require.Equal(t, "((1 / 2) / 3)", ast.Print(mustExpr(t, "1 / 2 / 3")))
}

func TestPrecedencePowerRightAssociative(t *testing.T) {
	require.Equal(t, "(2 ** (3 ** 4))", ast.Print(mustExpr(t, "2 ** 3 ** 4")))
}

func TestPrecedenceComparisonVsLogic(t *testing.T) {
	require.Equal(t, "((1 < 2) && (3 < 4))", ast.Print(mustExpr(t, "1 < 2 && 3 < 4")))
	require.Equal(t, "((1 && 2) || (3 && 4))", ast.Print(mustExpr(t, "1 && 2 || 3 && 4")))
}

func TestPrecedenceBitwiseOrdering(t *testing.T) {
	// & binds tighter than ^ binds tighter than |
	require.Equal(t, "(1 | (2 ^ (3 & 4)))", ast.Print(mustExpr(t, "1 | 2 ^ 3 & 4")))
}

func TestTernaryChainsRight(t *testing.T) {
	require.Equal(t, "(1 ? 2 : (3 ? 4 : 5))", ast.Print(mustExpr(t, "1 ? 2 : 3 ? 4 : 5")))
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	require.Equal(t, "(a = (b = 1))", ast.Print(mustExpr(t, "a = b = 1")))
}

func TestDotBindsTighterThanCall(t *testing.T) {
	e := mustExpr(t, "a.b(1, 2)")
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "a.b", ast.Print(call.Callee))
	require.Len(t, call.Args, 2)
}

func TestSubscriptChaining(t *testing.T) {
	e := mustExpr(t, "a[0][1]")
	outer, ok := e.(*ast.Node)
	require.True(t, ok)
	require.Len(t, outer.Operands, 2)
	inner, ok := outer.Operands[0].(*ast.Node)
	require.True(t, ok)
	require.Equal(t, "a", ast.Print(inner.Operands[0]))
}

func TestUnaryPrefixBindsTighterThanBinary(t *testing.T) {
	require.Equal(t, "((-(a)) + b)", ast.Print(mustExpr(t, "-a + b")))
}

func TestCallTrailingCommaRejected(t *testing.T) {
	_, err := ParseExpression("f(1, 2, )")
	require.Error(t, err)
}

func TestLambdaEmptyParams(t *testing.T) {
	e := mustExpr(t, "lambda () -> 1 end")
	lam, ok := e.(*ast.Lambda)
	require.True(t, ok)
	require.Empty(t, lam.Params)
}

func TestLambdaTrailingCommaRejected(t *testing.T) {
	_, err := ParseExpression("lambda (a, ) -> a end")
	require.Error(t, err)
}

func TestProgramStatements(t *testing.T) {
	stmts, err := ParseProgram(`
		let x = 1;
		if x > 0 {
			x = x + 1
		} elsif x < 0 {
			x = 0
		} else {
			x = -1
		}
		for i, v in arr { println(v); }
		while x < 10 { x = x + 1; }
		fn add(a, b) { return a + b; }
		try { throw "boom"; } catch (e) { println(e); } finally { cleanup(); }
	`)
	require.NoError(t, err)
	require.Len(t, stmts, 6)

	letStmt, ok := stmts[0].(*ast.Let)
	require.True(t, ok)
	require.Equal(t, "x", letStmt.Name)

	ifStmt, ok := stmts[1].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.Elsifs, 1)
	require.True(t, ifStmt.HasElse)

	forStmt, ok := stmts[2].(*ast.For)
	require.True(t, ok)
	require.True(t, forStmt.HasIndex)
	require.Equal(t, "i", forStmt.IndexName)
	require.Equal(t, "v", forStmt.ItemName)

	fnStmt, ok := stmts[4].(*ast.Fn)
	require.True(t, ok)
	require.Equal(t, "add", fnStmt.Name)
	require.Equal(t, []string{"a", "b"}, fnStmt.Params)

	tryStmt, ok := stmts[5].(*ast.Try)
	require.True(t, ok)
	require.True(t, tryStmt.HasCatch)
	require.True(t, tryStmt.HasFinally)
}

func TestExprStatementSemicolonRecorded(t *testing.T) {
	stmts, err := ParseProgram("1 + 1;\n2 + 2")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	require.True(t, stmts[0].(*ast.ExprStmt).HadSemicolon)
	require.False(t, stmts[1].(*ast.ExprStmt).HadSemicolon)
}

func TestReturnWithoutExpression(t *testing.T) {
	stmts, err := ParseProgram("fn f() { return; }")
	require.NoError(t, err)
	fn := stmts[0].(*ast.Fn)
	ret := fn.Body[0].(*ast.Return)
	require.False(t, ret.HasExpr)
}

func TestSyntaxErrorCarriesLine(t *testing.T) {
	_, err := ParseProgram("let x = ;\nlet y = 1")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	require.Equal(t, 1, synErr.Token.Line)
}
