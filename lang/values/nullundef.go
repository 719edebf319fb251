package values

// Null is the value produced by the `null` literal.
type Null struct{}

func (Null) String() string { return "null" }
func (Null) Type() string { return "null" }
func (Null) Truth() bool { return false }

// Undefined is the value produced by the `undefined` literal, by indexing
// out of bounds, and by any native function (such as print) that has
// nothing else to return.
type Undefined struct{}

func (Undefined) String() string { return "undefined" }
func (Undefined) Type() string { return "undefined" }
func (Undefined) Truth() bool { return false }

// NullValue and UndefinedValue are the sole instances of Null and
// Undefined; both types are zero-size so any value of the type would do,
// but sharing one instance avoids allocating one per literal evaluation.
var (
	NullValue      = Null{}
	UndefinedValue = Undefined{}
)
