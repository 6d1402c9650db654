package engine_test

import (
	"bytes"
	"testing"

	"github.com/avscript/avscript/engine"
	"github.com/avscript/avscript/object"
	"github.com/stretchr/testify/require"
)

func TestExecuteReturnsLastStatementValue(t *testing.T) {
	e := engine.New(nil)
	v, err := e.Execute("1 + 2", nil)
	require.NoError(t, err)
	require.Equal(t, object.Int(3), v)
}

func TestExecuteSeedsContextBindings(t *testing.T) {
	e := engine.New(nil)
	v, err := e.Execute("x + 1", map[string]object.Value{"x": object.Int(41)})
	require.NoError(t, err)
	require.Equal(t, object.Int(42), v)
}

func TestExecuteRunsPrintBuiltinAgainstSuppliedWriter(t *testing.T) {
	var buf bytes.Buffer
	e := engine.New(&buf)
	_, err := e.Execute(`println("hi")`, nil)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "hi")
}

func TestCompileReusesParsedProgramAcrossContexts(t *testing.T) {
	e := engine.New(nil)
	c, err := e.Compile("x * 2")
	require.NoError(t, err)

	v1, err := c.Execute(map[string]object.Value{"x": object.Int(10)})
	require.NoError(t, err)
	require.Equal(t, object.Int(20), v1)

	v2, err := c.Execute(map[string]object.Value{"x": object.Int(21)})
	require.NoError(t, err)
	require.Equal(t, object.Int(42), v2)
}

func TestCheckReportsUndefinedVariable(t *testing.T) {
	e := engine.New(nil)
	diags := e.Check("a + 1;")
	require.Len(t, diags, 1)
	require.Equal(t, "Undefined variable 'a'", diags[0].Message)
}

func TestBuiltinNamesIncludesCatalogEntries(t *testing.T) {
	e := engine.New(nil)
	require.Contains(t, e.BuiltinNames(), "math.sqrt")
	require.Contains(t, e.BuiltinNames(), "seq.list")
}
