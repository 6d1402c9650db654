package builtins_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/avscript/avscript/builtins"
	"github.com/avscript/avscript/object"
	"github.com/stretchr/testify/require"
)

// fakeApplier invokes an *object.Builtin directly, enough to exercise
// map/filter/reduce/sort without pulling in the full interpreter.
type fakeApplier struct{}

func (fakeApplier) Apply(fn object.Value, args []object.Value) (object.Value, error) {
	b, ok := fn.(*object.Builtin)
	if !ok {
		return nil, fmt.Errorf("not callable: %s", object.TypeName(fn))
	}
	return b.Fn(args)
}

func double(args []object.Value) (object.Value, error) {
	n, _ := args[0].(object.Int)
	return n * 2, nil
}

func catalogFor(t *testing.T) (*builtins.Catalog, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return builtins.NewCatalog(&buf, fakeApplier{}), &buf
}

func call(t *testing.T, c *builtins.Catalog, name string, args ...object.Value) object.Value {
	t.Helper()
	fr := newFakeFrame()
	c.Install(fr)
	fn, ok := fr.m[name]
	require.True(t, ok, "missing builtin %s", name)
	b, ok := fn.(*object.Builtin)
	require.True(t, ok)
	v, err := b.Fn(args)
	require.NoError(t, err)
	return v
}

type fakeFrame struct{ m map[string]object.Value }

func newFakeFrame() *fakeFrame { return &fakeFrame{m: make(map[string]object.Value)} }
func (f *fakeFrame) Declare(name string, v object.Value) { f.m[name] = v }

func TestPrintWritesToCatalogWriter(t *testing.T) {
	c, buf := catalogFor(t)
	call(t, c, "println", object.String("hi"))
	require.Equal(t, "hi\n", buf.String())
}

func TestRangeProducesAscendingList(t *testing.T) {
	c, _ := catalogFor(t)
	v := call(t, c, "range", object.Int(0), object.Int(5))
	list := v.(*object.List)
	require.Len(t, list.Items, 5)
	require.Equal(t, object.Int(0), list.Items[0])
	require.Equal(t, object.Int(4), list.Items[4])
}

func TestRangeWithNegativeStep(t *testing.T) {
	c, _ := catalogFor(t)
	v := call(t, c, "range", object.Int(5), object.Int(0), object.Int(-1))
	list := v.(*object.List)
	require.Equal(t, []object.Value{object.Int(5), object.Int(4), object.Int(3), object.Int(2), object.Int(1)}, list.Items)
}

func TestMinMaxOverVariadicArgs(t *testing.T) {
	c, _ := catalogFor(t)
	require.Equal(t, object.Int(1), call(t, c, "min", object.Int(3), object.Int(1), object.Int(2)))
	require.Equal(t, object.Int(3), call(t, c, "max", object.Int(3), object.Int(1), object.Int(2)))
}

func TestCountAndIsEmpty(t *testing.T) {
	c, _ := catalogFor(t)
	list := object.NewList(object.Int(1), object.Int(2))
	require.Equal(t, object.Int(2), call(t, c, "count", list))
	require.Equal(t, object.Bool(false), call(t, c, "is_empty", list))
	require.Equal(t, object.Bool(true), call(t, c, "is_empty", object.NewList()))
}

func TestSeqMapBuildsOrderedMap(t *testing.T) {
	c, _ := catalogFor(t)
	v := call(t, c, "seq.map", object.String("a"), object.Int(1), object.String("b"), object.Int(2))
	m := v.(*object.Map)
	require.Equal(t, []string{"a", "b"}, m.Keys())
	require.Equal(t, object.Int(1), m.Get("a"))
}

func TestMapFilterReduceOverList(t *testing.T) {
	var buf bytes.Buffer
	c := builtins.NewCatalog(&buf, fakeApplier{})
	doubleFn := &object.Builtin{Name: "double", Fn: double}

	list := object.NewList(object.Int(1), object.Int(2), object.Int(3))
	mapped := call(t, c, "map", list, doubleFn).(*object.List)
	require.Equal(t, []object.Value{object.Int(2), object.Int(4), object.Int(6)}, mapped.Items)

	isEven := &object.Builtin{Name: "isEven", Fn: func(args []object.Value) (object.Value, error) {
		n := args[0].(object.Int)
		return object.Bool(n%2 == 0), nil
	}}
	filtered := call(t, c, "filter", mapped, isEven).(*object.List)
	require.Equal(t, mapped.Items, filtered.Items)

	sum := &object.Builtin{Name: "sum", Fn: func(args []object.Value) (object.Value, error) {
		return args[0].(object.Int) + args[1].(object.Int), nil
	}}
	total := call(t, c, "reduce", mapped, sum, object.Int(0))
	require.Equal(t, object.Int(12), total)
}

func TestSortWithDefaultComparator(t *testing.T) {
	c, _ := catalogFor(t)
	list := object.NewList(object.Int(3), object.Int(1), object.Int(2))
	sorted := call(t, c, "sort", list).(*object.List)
	require.Equal(t, []object.Value{object.Int(1), object.Int(2), object.Int(3)}, sorted.Items)
}

func TestReverseReturnsNewList(t *testing.T) {
	c, _ := catalogFor(t)
	list := object.NewList(object.Int(1), object.Int(2), object.Int(3))
	reversed := call(t, c, "reverse", list).(*object.List)
	require.Equal(t, []object.Value{object.Int(3), object.Int(2), object.Int(1)}, reversed.Items)
	require.Equal(t, []object.Value{object.Int(1), object.Int(2), object.Int(3)}, list.Items)
}

func TestPredicateFactoryBuildsUnaryCallable(t *testing.T) {
	c, _ := catalogFor(t)
	pred := call(t, c, "seq.gt", object.Int(2)).(*object.Builtin)
	v, err := pred.Fn([]object.Value{object.Int(5)})
	require.NoError(t, err)
	require.Equal(t, object.Bool(true), v)
	v, err = pred.Fn([]object.Value{object.Int(1)})
	require.NoError(t, err)
	require.Equal(t, object.Bool(false), v)
}

func TestStringBuiltins(t *testing.T) {
	c, _ := catalogFor(t)
	require.Equal(t, object.Int(5), call(t, c, "string.length", object.String("hello")))
	require.Equal(t, object.Bool(true), call(t, c, "string.startsWith", object.String("hello"), object.String("he")))
	require.Equal(t, object.String("ell"), call(t, c, "string.substring", object.String("hello"), object.Int(1), object.Int(4)))
	joined := call(t, c, "string.join", object.NewList(object.String("a"), object.String("b")), object.String(","))
	require.Equal(t, object.String("a,b"), joined)
}

func TestMathBuiltins(t *testing.T) {
	c, _ := catalogFor(t)
	require.Equal(t, object.Float(2), call(t, c, "math.sqrt", object.Int(4)))
	require.Equal(t, object.Float(8), call(t, c, "math.pow", object.Int(2), object.Int(3)))
	require.Equal(t, object.Int(5), call(t, c, "math.abs", object.Int(-5)))
}

func TestNamesExposesEveryEntry(t *testing.T) {
	c, _ := catalogFor(t)
	names := c.Names()
	seen := make(map[string]bool)
	for _, n := range names {
		seen[n] = true
	}
	require.True(t, seen["print"])
	require.True(t, seen["seq.list"])
	require.True(t, seen["math.sqrt"])
}
