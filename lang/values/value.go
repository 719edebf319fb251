// Package values implements the tagged-union runtime value model: numbers,
// booleans, strings, arrays, objects, native functions, function templates,
// null, and undefined.
package values

import "github.com/shadowbrowser/shadow.js/lang/heap"

// Value is the interface implemented by every value the machine can push
// onto the operand stack or store in globals.
type Value interface {
	// String returns the value's display representation, the same text
	// print writes.
	String() string

	// Type returns a short name for the value's kind, used in error
	// messages.
	Type() string

	// Truth reports the value's truthiness for branching. Only false,
	// null, undefined, the number 0 (including -0), and the empty string
	// are falsy; everything else, including NaN and empty arrays/objects,
	// is truthy.
	Truth() bool
}

// Handle is implemented by every Value backed by a heap allocation
// (ArrayValue, ObjectValue, FunctionValue). The collector and the
// identity-equality rules for Equal/NotEqual both operate on the
// underlying *heap.Object rather than on the Go value wrapping it.
type Handle interface {
	Value
	Object() *heap.Object
}

// SameHandle reports whether a and b are Handles wrapping the same
// *heap.Object, i.e. the same allocation. Two distinct allocations with
// identical contents are not the same handle.
func SameHandle(a, b Value) bool {
	ha, ok := a.(Handle)
	if !ok {
		return false
	}
	hb, ok := b.(Handle)
	if !ok {
		return false
	}
	return ha.Object() == hb.Object()
}
