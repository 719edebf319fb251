// Package heap implements the tracing mark-sweep collector that owns every
// composite runtime value (array, object, function template) allocated
// while a chunk executes. Numbers, booleans, null, and undefined are inline
// values and never touch the heap; strings are reference-counted and also
// bypass the tracing collector (see lang/values).
package heap

// Tracer is implemented by any heap payload that may itself hold references
// to other heap objects. Trace must call visit once for every child object
// directly reachable from the payload; the collector handles recursion and
// cycle detection.
type Tracer interface {
	Trace(visit func(*Object))
}

// Object is one entry of the heap: a payload plus the mark bit the
// collector flips during a collection. Handles (lang/values.ArrayValue,
// ObjectValue, FunctionValue) hold a stable *Object pointer, so a
// collection that retains an object never invalidates a live handle.
type Object struct {
	marked  bool
	Payload Tracer
}

// Heap is the backing store for every allocation made while a chunk runs.
type Heap struct {
	objects   []*Object
	liveAfter int // size of objects right after the last collection
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{liveAfter: -1}
}

// Alloc appends payload as a new heap object and returns its handle.
func (h *Heap) Alloc(payload Tracer) *Object {
	obj := &Object{Payload: payload}
	h.objects = append(h.objects, obj)
	return obj
}

// Len reports how many objects the heap currently tracks.
func (h *Heap) Len() int { return len(h.objects) }

// ShouldCollect reports whether a collection is due: the VM asks this once
// per instruction. Two triggers compose: a fixed instruction cadence
// (instrCount, owned by the caller) hitting a multiple of 1000, or the
// number of tracked objects having grown past twice the count that
// survived the last collection (the adaptive high-water mark).
func (h *Heap) ShouldCollect(instrCount int) bool {
	if instrCount > 0 && instrCount%1000 == 0 {
		return true
	}
	if h.liveAfter >= 0 && len(h.objects) > 2*h.liveAfter {
		return true
	}
	return false
}

// Collect runs mark-sweep using roots as the root set: every composite
// value directly reachable from the evaluation stack, the globals map, and
// the executing chunk's constant pool. Objects not reachable from any root,
// transitively, are dropped.
func (h *Heap) Collect(roots []*Object) {
	for _, obj := range h.objects {
		obj.marked = false
	}

	visited := make(map[*Object]bool, len(h.objects))
	var mark func(o *Object)
	mark = func(o *Object) {
		if o == nil || visited[o] {
			return
		}
		visited[o] = true
		o.marked = true
		if o.Payload != nil {
			o.Payload.Trace(mark)
		}
	}
	for _, root := range roots {
		mark(root)
	}

	live := h.objects[:0]
	for _, obj := range h.objects {
		if obj.marked {
			live = append(live, obj)
		}
	}
	h.objects = live
	h.liveAfter = len(live)
}
