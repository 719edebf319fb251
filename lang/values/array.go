package values

import (
	"strings"

	"github.com/shadowbrowser/shadow.js/lang/heap"
)

// arrayData is the heap payload backing an ArrayValue.
type arrayData struct {
	elems []Value
}

func (a *arrayData) Trace(visit func(*heap.Object)) {
	for _, v := range a.elems {
		if h, ok := v.(Handle); ok {
			visit(h.Object())
		}
	}
}

// ArrayValue is a handle to a heap-allocated, ordered sequence of values.
// Two ArrayValues compare equal only if they wrap the same allocation (see
// SameHandle); contents are irrelevant to identity.
type ArrayValue struct {
	obj *heap.Object
}

// NewArray allocates a fresh array on h containing elems (elems is taken by
// reference, not copied; callers should not mutate it afterwards except
// through the returned ArrayValue).
func NewArray(h *heap.Heap, elems []Value) ArrayValue {
	return ArrayValue{obj: h.Alloc(&arrayData{elems: elems})}
}

func (v ArrayValue) Object() *heap.Object { return v.obj }
func (v ArrayValue) data() *arrayData { return v.obj.Payload.(*arrayData) }

// Len returns the number of elements.
func (v ArrayValue) Len() int { return len(v.data().elems) }

// Get returns the element at i and whether i was in range.
func (v ArrayValue) Get(i int) (Value, bool) {
	elems := v.data().elems
	if i < 0 || i >= len(elems) {
		return nil, false
	}
	return elems[i], true
}

// Set writes to index i, per the SetIndex opcode's array rules: i == Len()
// appends, i < Len() replaces, and i > Len() is the caller's error to
// report (sparse arrays are not supported).
func (v ArrayValue) Set(i int, val Value) bool {
	d := v.data()
	switch {
	case i == len(d.elems):
		d.elems = append(d.elems, val)
		return true
	case i >= 0 && i < len(d.elems):
		d.elems[i] = val
		return true
	default:
		return false
	}
}

func (v ArrayValue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range v.data().elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (v ArrayValue) Type() string { return "array" }

// Truth is always true: arrays, including empty ones, are never falsy.
func (v ArrayValue) Truth() bool { return true }
