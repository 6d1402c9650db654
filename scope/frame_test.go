package scope

import (
	"testing"

	"github.com/avscript/avscript/object"
	"github.com/stretchr/testify/require"
)

func TestFrameLookupWalksParents(t *testing.T) {
	global := New(nil)
	global.Declare("x", object.Int(1))
	child := New(global)
	v, ok := child.Lookup("x")
	require.True(t, ok)
	require.Equal(t, object.Int(1), v)
}

func TestFrameAssignMutatesNearestBinding(t *testing.T) {
	global := New(nil)
	global.Declare("x", object.Int(1))
	child := New(global)
	child.Assign("x", object.Int(2))

	v, _ := global.Lookup("x")
	require.Equal(t, object.Int(2), v)
	_, okLocal := child.vars["x"]
	require.False(t, okLocal)
}

func TestFrameAssignCreatesInCurrentWhenAbsent(t *testing.T) {
	global := New(nil)
	child := New(global)
	child.Assign("y", object.Int(9))

	_, okGlobal := global.Lookup("y")
	require.False(t, okGlobal)
	v, ok := child.vars["y"]
	require.True(t, ok)
	require.Equal(t, object.Int(9), v)
}

func TestFrameShadowing(t *testing.T) {
	global := New(nil)
	global.Declare("x", object.Int(1))
	child := New(global)
	child.Declare("x", object.Int(2))

	v, _ := child.Lookup("x")
	require.Equal(t, object.Int(2), v)
	gv, _ := global.Lookup("x")
	require.Equal(t, object.Int(1), gv)
}

func TestClosureCapturesFrame(t *testing.T) {
	global := New(nil)
	cl := &Closure{Name: "f", Captured: global, IsLambda: true}
	require.Equal(t, object.ClosureKind, cl.Kind())
	require.Same(t, global, cl.Captured)
}
