package values

import (
	"github.com/shadowbrowser/shadow.js/lang/ast"
	"github.com/shadowbrowser/shadow.js/lang/heap"
)

// functionData is the heap payload backing a FunctionValue: a template
// capturing a function declaration's shape. User-defined functions are
// constructible but never dispatched through Call; the template exists only
// so `function` declarations have somewhere to live as a value once a later
// compiler stage decides to construct one.
type functionData struct {
	Name   string
	Params []string
	Body   *ast.BlockStmt
}

// functionData has no child heap handles to trace: params are plain
// strings and the body is AST, not runtime values.
func (f *functionData) Trace(func(*heap.Object)) {}

// FunctionValue is a handle to a heap-allocated function template.
type FunctionValue struct {
	obj *heap.Object
}

// NewFunction allocates a function template on h. It is a Handle like
// ArrayValue/ObjectValue, but nothing ever calls it: Call only dispatches
// NativeFunction.
func NewFunction(h *heap.Heap, name string, params []string, body *ast.BlockStmt) FunctionValue {
	return FunctionValue{obj: h.Alloc(&functionData{Name: name, Params: params, Body: body})}
}

func (v FunctionValue) Object() *heap.Object { return v.obj }
func (v FunctionValue) data() *functionData { return v.obj.Payload.(*functionData) }

func (v FunctionValue) Name() string { return v.data().Name }
func (v FunctionValue) Params() []string { return v.data().Params }
func (v FunctionValue) Body() *ast.BlockStmt { return v.data().Body }

func (v FunctionValue) String() string { return "[function " + v.data().Name + "]" }
func (v FunctionValue) Type() string { return "function" }
func (v FunctionValue) Truth() bool { return true }
