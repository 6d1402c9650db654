package object_test

import (
	"math/big"
	"testing"

	"github.com/avscript/avscript/object"
	"github.com/stretchr/testify/require"
)

func TestTruthyRules(t *testing.T) {
	require.True(t, object.Truthy(object.Bool(true)))
	require.False(t, object.Truthy(object.Bool(false)))
	require.False(t, object.Truthy(object.Nil))
	require.False(t, object.Truthy(object.Undefined))
	require.True(t, object.Truthy(object.Int(0)))
	require.True(t, object.Truthy(object.String("")))
}

func TestNilAndUndefinedAreDistinctSingletons(t *testing.T) {
	require.True(t, object.IsNil(object.Nil))
	require.False(t, object.IsUndefined(object.Nil))
	require.True(t, object.IsUndefined(object.Undefined))
	require.False(t, object.IsNil(object.Undefined))
	require.NotEqual(t, object.Nil, object.Undefined)
}

func TestBigIntInspectCarriesSuffix(t *testing.T) {
	v := object.BigInt{V: big.NewInt(42)}
	require.Equal(t, "42", v.String())
	require.Equal(t, "42N", v.Inspect())
}

func TestStringInspectQuotesAndEscapes(t *testing.T) {
	v := object.String("line\nbreak")
	require.Equal(t, "line\nbreak", v.String())
	require.Equal(t, `"line\nbreak"`, v.Inspect())
}

func TestTypeNameMatchesKind(t *testing.T) {
	require.Equal(t, "long", object.TypeName(object.Int(1)))
	require.Equal(t, "double", object.TypeName(object.Float(1.5)))
	require.Equal(t, "string", object.TypeName(object.String("x")))
}
