package interp

import (
	"testing"

	"github.com/avscript/avscript/object"
	"github.com/avscript/avscript/parser"
	"github.com/avscript/avscript/scope"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (object.Value, *scope.Frame) {
	t.Helper()
	stmts, err := parser.ParseProgram(src)
	require.NoError(t, err)
	fr := scope.New(nil)
	it := New()
	v, err := it.ExecStmts(stmts, fr)
	require.NoError(t, err)
	return v, fr
}

func TestFibonacciRecursion(t *testing.T) {
	src := `
	fn fib(n) {
		if (n < 2) {
			return n;
		}
		return fib(n - 1) + fib(n - 2);
	}
	fib(10)
	`
	v, _ := run(t, src)
	require.Equal(t, object.Int(55), v)
}

func TestCounterClosureCapturesMutableFrame(t *testing.T) {
	src := `
	fn makeCounter() {
		let n = 0;
		return lambda () -> (n = n + 1) end;
	}
	let counter = makeCounter();
	counter();
	counter();
	counter()
	`
	v, _ := run(t, src)
	require.Equal(t, object.Int(3), v)
}

func TestForLoopOverListWithIndex(t *testing.T) {
	stmts, err := parser.ParseProgram(`
	let total = 0;
	for i, x in items {
		total = total + x + i;
	}
	total
	`)
	require.NoError(t, err)
	fr := scope.New(nil)
	fr.Declare("items", object.NewList(object.Int(10), object.Int(20), object.Int(30)))
	it := New()
	v, err := it.ExecStmts(stmts, fr)
	require.NoError(t, err)
	// values: (10+0)+(20+1)+(30+2) = 63
	require.Equal(t, object.Int(63), v)
}

func TestAssignmentMutatesNearestBinding(t *testing.T) {
	src := `
	let x = 1;
	fn bump() {
		x = x + 1;
	}
	bump();
	bump();
	x
	`
	v, _ := run(t, src)
	require.Equal(t, object.Int(3), v)
}

func TestIfElsifElseChain(t *testing.T) {
	src := `
	fn classify(n) {
		if (n < 0) {
			return "negative";
		} elsif (n == 0) {
			return "zero";
		} else {
			return "positive";
		}
	}
	classify(-5)
	`
	v, _ := run(t, src)
	require.Equal(t, object.String("negative"), v)
}

func TestWhileLoopBreakAndContinue(t *testing.T) {
	src := `
	let i = 0;
	let sum = 0;
	while (i < 10) {
		i = i + 1;
		if (i == 5) {
			continue;
		}
		if (i > 8) {
			break;
		}
		sum = sum + i;
	}
	sum
	`
	v, _ := run(t, src)
	require.Equal(t, object.Int(1+2+3+4+6+7+8), v)
}

func TestTryCatchBindsThrownValue(t *testing.T) {
	src := `
	let result = "unset";
	try {
		throw "boom";
	} catch (e) {
		result = e;
	}
	result
	`
	v, _ := run(t, src)
	require.Equal(t, object.String("boom"), v)
}

func TestFinallyAlwaysRuns(t *testing.T) {
	src := `
	let log = "";
	fn risky() {
		try {
			return "from-try";
		} finally {
			log = log + "cleanup";
		}
	}
	let r = risky();
	log
	`
	v, fr := run(t, src)
	require.Equal(t, object.String("cleanup"), v)
	r, ok := fr.Lookup("r")
	require.True(t, ok)
	require.Equal(t, object.String("from-try"), r)
}

func TestStringConcatenationCoercesNonString(t *testing.T) {
	src := `"count: " + 3`
	v, _ := run(t, src)
	require.Equal(t, object.String("count: 3"), v)
}

func TestStringInterpolationReentersExpressionParser(t *testing.T) {
	src := `
	let name = "Ada";
	let n = 2 + 3;
	"hello #{name}, #{n * 2}"
	`
	v, _ := run(t, src)
	require.Equal(t, object.String("hello Ada, 10"), v)
}

func TestMalformedInterpolationIsLiteral(t *testing.T) {
	src := `"broken #{1 +"`
	v, _ := run(t, src)
	require.Equal(t, object.String("broken #{1 +"), v)
}

func TestPropertyAccessOnMap(t *testing.T) {
	fr := scope.New(nil)
	m := object.NewMap()
	m.Put("name", object.String("Ada"))
	fr.Declare("person", m)

	expr, err := parser.ParseExpression("person.name")
	require.NoError(t, err)
	it := New()
	v, err := it.Eval(expr, fr)
	require.NoError(t, err)
	require.Equal(t, object.String("Ada"), v)
}

func TestPropertyAccessOnNonMapIsUndefined(t *testing.T) {
	fr := scope.New(nil)
	fr.Declare("n", object.Int(5))
	expr, err := parser.ParseExpression("n.anything")
	require.NoError(t, err)
	it := New()
	v, err := it.Eval(expr, fr)
	require.NoError(t, err)
	require.True(t, object.IsUndefined(v))
}

func TestSubscriptOutOfRangeIsUndefined(t *testing.T) {
	fr := scope.New(nil)
	fr.Declare("xs", object.NewList(object.Int(1), object.Int(2)))
	expr, err := parser.ParseExpression("xs[9]")
	require.NoError(t, err)
	it := New()
	v, err := it.Eval(expr, fr)
	require.NoError(t, err)
	require.True(t, object.IsUndefined(v))
}

func TestUnboundIdentifierEvaluatesToUndefined(t *testing.T) {
	v, _ := run(t, "neverDeclared")
	require.True(t, object.IsUndefined(v))
}

func TestLooseEqualityCoercesNumericString(t *testing.T) {
	v, _ := run(t, `"3" == 3`)
	require.Equal(t, object.Bool(true), v)
}

func TestLooseEqualityComparesNumericStringByParsedValue(t *testing.T) {
	v, _ := run(t, `"3.0" == 3`)
	require.Equal(t, object.Bool(true), v)
}

func TestForLoopOverMapSingleNameBindsKeyValueRecord(t *testing.T) {
	stmts, err := parser.ParseProgram(`
	let keys = "";
	let total = 0;
	for entry in items {
		keys = keys + entry.key;
		total = total + entry.value;
	}
	total
	`)
	require.NoError(t, err)
	fr := scope.New(nil)
	m := object.NewMap()
	m.Put("a", object.Int(1))
	m.Put("b", object.Int(2))
	fr.Declare("items", m)
	it := New()
	v, err := it.ExecStmts(stmts, fr)
	require.NoError(t, err)
	require.Equal(t, object.Int(3), v)
}

func TestForLoopOverMapTwoNameBindsKeyAndValueSeparately(t *testing.T) {
	stmts, err := parser.ParseProgram(`
	let total = 0;
	for k, v in items {
		total = total + v;
	}
	total
	`)
	require.NoError(t, err)
	fr := scope.New(nil)
	m := object.NewMap()
	m.Put("a", object.Int(1))
	m.Put("b", object.Int(2))
	fr.Declare("items", m)
	it := New()
	v, err := it.ExecStmts(stmts, fr)
	require.NoError(t, err)
	require.Equal(t, object.Int(3), v)
}

func TestBigIntArithmetic(t *testing.T) {
	v, _ := run(t, "10000000000000000000N + 1N")
	bi, ok := v.(object.BigInt)
	require.True(t, ok)
	require.Equal(t, "10000000000000000001", bi.V.String())
}

func TestPowerIsRightAssociativeAtRuntime(t *testing.T) {
	// 2 ** (3 ** 2) == 2 ** 9 == 512, not (2 ** 3) ** 2 == 64
	v, _ := run(t, "2 ** 3 ** 2")
	require.Equal(t, object.Int(512), v)
}

func TestBreakOutsideLoopInFunctionIsRuntimeError(t *testing.T) {
	stmts, err := parser.ParseProgram(`
	fn bad() {
		break;
	}
	bad()
	`)
	require.NoError(t, err)
	it := New()
	_, err = it.ExecStmts(stmts, scope.New(nil))
	require.Error(t, err)
	_, ok := err.(*RuntimeError)
	require.True(t, ok)
}

func TestAssignmentToListIndex(t *testing.T) {
	fr := scope.New(nil)
	list := object.NewList(object.Int(1), object.Int(2), object.Int(3))
	fr.Declare("xs", list)
	expr, err := parser.ParseExpression("xs[1] = 99")
	require.NoError(t, err)
	it := New()
	_, err = it.Eval(expr, fr)
	require.NoError(t, err)
	require.Equal(t, object.Int(99), list.Get(1))
}

func TestAssignmentToMapProperty(t *testing.T) {
	fr := scope.New(nil)
	m := object.NewMap()
	fr.Declare("person", m)
	expr, err := parser.ParseExpression(`person.name = "Grace"`)
	require.NoError(t, err)
	it := New()
	_, err = it.Eval(expr, fr)
	require.NoError(t, err)
	require.Equal(t, object.String("Grace"), m.Get("name"))
}
