package values

import (
	"strings"

	"github.com/dolthub/swiss"

	"github.com/shadowbrowser/shadow.js/lang/heap"
)

// objectData is the heap payload backing an ObjectValue: an
// insertion-ordered mapping from string keys to values, backed by a
// swiss-table map for the lookup itself. Duplicate inserts (via Set) keep
// the original position; last write wins on the value.
type objectData struct {
	keys   []string
	values *swiss.Map[string, Value]
}

func (o *objectData) Trace(visit func(*heap.Object)) {
	for _, k := range o.keys {
		if val, ok := o.values.Get(k); ok {
			if h, ok := val.(Handle); ok {
				visit(h.Object())
			}
		}
	}
}

// ObjectValue is a handle to a heap-allocated, insertion-ordered
// string-keyed mapping. Like ArrayValue, equality is by allocation
// identity, not content.
type ObjectValue struct {
	obj *heap.Object
}

// NewObject allocates a fresh object on h from parallel keys/vals slices
// (as produced by the Object opcode; duplicate keys keep last write).
func NewObject(h *heap.Heap, keys []string, vals []Value) ObjectValue {
	d := &objectData{values: swiss.NewMap[string, Value](uint32(len(keys)))}
	v := ObjectValue{obj: h.Alloc(d)}
	for i, k := range keys {
		v.Set(k, vals[i])
	}
	return v
}

func (v ObjectValue) Object() *heap.Object { return v.obj }
func (v ObjectValue) data() *objectData { return v.obj.Payload.(*objectData) }

// Get returns the value stored under key and whether it was present.
func (v ObjectValue) Get(key string) (Value, bool) {
	return v.data().values.Get(key)
}

// Set inserts or overwrites key, appending it to the insertion order on
// first write.
func (v ObjectValue) Set(key string, val Value) {
	d := v.data()
	if !d.values.Has(key) {
		d.keys = append(d.keys, key)
	}
	d.values.Put(key, val)
}

func (v ObjectValue) String() string {
	d := v.data()
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		val, _ := d.values.Get(k)
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(val.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (v ObjectValue) Type() string { return "object" }

// Truth is always true: objects, including empty ones, are never falsy.
func (v ObjectValue) Truth() bool { return true }
