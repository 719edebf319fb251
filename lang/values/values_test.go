package values_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowbrowser/shadow.js/lang/heap"
	"github.com/shadowbrowser/shadow.js/lang/values"
)

func TestNumberTruth(t *testing.T) {
	require.True(t, values.Number(1).Truth())
	require.True(t, values.Number(-1).Truth())
	require.False(t, values.Number(0).Truth())
	require.False(t, values.Number(-0.0).Truth())
	require.True(t, values.Number(negNaN()).Truth()) // NaN is truthy, unlike JavaScript
}

func negNaN() float64 {
	var zero float64
	return zero / zero
}

func TestBooleanTruth(t *testing.T) {
	require.True(t, values.Boolean(true).Truth())
	require.False(t, values.Boolean(false).Truth())
}

func TestStringTruthAndConcat(t *testing.T) {
	require.False(t, values.NewString("").Truth())
	require.True(t, values.NewString("x").Truth())

	a := values.NewString("foo")
	b := values.NewString("bar")
	require.Equal(t, "foobar", a.Concat(b).Value())
}

func TestStringRefcounting(t *testing.T) {
	s := values.NewString("x")
	s2 := s.Retain()
	require.False(t, s2.Release()) // one ref remains (the original)
	require.True(t, s.Release())   // last owner released
}

func TestNullUndefinedAlwaysFalsy(t *testing.T) {
	require.False(t, values.NullValue.Truth())
	require.False(t, values.UndefinedValue.Truth())
	require.Equal(t, "null", values.NullValue.String())
	require.Equal(t, "undefined", values.UndefinedValue.String())
}

func TestArrayIdentityNotContent(t *testing.T) {
	h := heap.New()
	a := values.NewArray(h, []values.Value{values.Number(1)})
	b := values.NewArray(h, []values.Value{values.Number(1)})
	require.True(t, values.SameHandle(a, a))
	require.False(t, values.SameHandle(a, b))
}

func TestArrayTruthAlwaysTrue(t *testing.T) {
	h := heap.New()
	empty := values.NewArray(h, nil)
	require.True(t, empty.Truth())
}

func TestArrayGetSetBounds(t *testing.T) {
	h := heap.New()
	arr := values.NewArray(h, []values.Value{values.Number(1), values.Number(2)})
	require.Equal(t, 2, arr.Len())

	v, ok := arr.Get(0)
	require.True(t, ok)
	require.Equal(t, values.Number(1), v)

	_, ok = arr.Get(5)
	require.False(t, ok)

	require.True(t, arr.Set(2, values.Number(3))) // append at len
	require.Equal(t, 3, arr.Len())

	require.False(t, arr.Set(10, values.Number(9))) // sparse, rejected
}

func TestObjectInsertionOrderAndLastWriteWins(t *testing.T) {
	h := heap.New()
	obj := values.NewObject(h, []string{"a", "b", "a"}, []values.Value{values.Number(1), values.Number(2), values.Number(3)})

	v, ok := obj.Get("a")
	require.True(t, ok)
	require.Equal(t, values.Number(3), v)

	require.Equal(t, "{a: 3, b: 2}", obj.String())
}

func TestObjectTruthAlwaysTrue(t *testing.T) {
	h := heap.New()
	empty := values.NewObject(h, nil, nil)
	require.True(t, empty.Truth())
}

func TestArrayAndObjectAreHeapHandles(t *testing.T) {
	h := heap.New()
	arr := values.NewArray(h, nil)
	obj := values.NewObject(h, nil, nil)
	require.Equal(t, 2, h.Len())
	require.NotNil(t, arr.Object())
	require.NotNil(t, obj.Object())
}

func TestNativeFunctionIdentity(t *testing.T) {
	f := &values.NativeFunction{Name: "print", Fn: func(args []values.Value) (values.Value, error) {
		return values.UndefinedValue, nil
	}}
	g := f
	require.Same(t, f, g)
}
