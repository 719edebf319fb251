package values

import "strconv"

// Number is an inline IEEE-754 double; it never touches the heap.
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) Type() string { return "number" }

// Truth is false only for the number 0 (positive or negative zero). NaN is
// truthy because NaN != 0; this diverges from JavaScript.
func (n Number) Truth() bool { return float64(n) != 0 }
