// Package machine implements the stack-based virtual machine that executes
// a compiled Chunk: the operand stack, the global environment, the
// mark-sweep collector's trigger points, and the pre-bound print builtin.
package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/dolthub/swiss"

	"github.com/shadowbrowser/shadow.js/lang/heap"
	"github.com/shadowbrowser/shadow.js/lang/jit"
	"github.com/shadowbrowser/shadow.js/lang/values"
)

// initialGlobalsCap sizes the swiss-table backing Globals; it is only a
// hint, the table grows past it like any other swiss.Map.
const initialGlobalsCap = 16

// Thread is one execution of the virtual machine: an evaluation stack, the
// single global environment, and the heap that backs every composite value
// it allocates. A Thread is not safe for concurrent use; execution is
// single-threaded and runs to completion on the caller's goroutine.
type Thread struct {
	// Name optionally identifies the thread for debugging.
	Name string

	// Stdout is where print writes. Defaults to os.Stdout if nil.
	Stdout io.Writer

	// Stderr is where debug traces are written. Defaults to os.Stderr if
	// nil.
	Stderr io.Writer

	// Debug enables per-opcode tracing: each dispatched instruction is
	// printed to Stderr before it executes.
	Debug bool

	// Globals is the single global environment. Only one frame is ever
	// populated at runtime; lang/compiler and lang/machine have no notion
	// of an outer/lexical frame beyond this map.
	Globals *swiss.Map[string, values.Value]

	// Heap owns every array, object, and function template allocated while
	// the thread runs.
	Heap *heap.Heap

	// jitCompiler owns every executable page mapped while compiling chunks
	// run on this thread; Close releases them.
	jitCompiler *jit.Compiler

	stack []values.Value
}

// NewThread returns a ready-to-run Thread with print pre-bound in Globals.
func NewThread() *Thread {
	th := &Thread{
		Globals:     swiss.NewMap[string, values.Value](initialGlobalsCap),
		Heap:        heap.New(),
		jitCompiler: jit.NewCompiler(),
		stack:       make([]values.Value, 0, 256),
	}
	th.Globals.Put("print", &values.NativeFunction{Name: "print", Fn: th.print})
	return th
}

// Close releases any executable memory the JIT mapped while this thread
// ran chunks. Call it once the thread is done executing.
func (th *Thread) Close() error {
	return th.jitCompiler.Close()
}

// writer returns Stdout, defaulting to os.Stdout.
func (th *Thread) writer() io.Writer {
	if th.Stdout == nil {
		return os.Stdout
	}
	return th.Stdout
}

// errWriter returns Stderr, defaulting to os.Stderr, for debug tracing.
func (th *Thread) errWriter() io.Writer {
	if th.Stderr == nil {
		return os.Stderr
	}
	return th.Stderr
}

func (th *Thread) print(args []values.Value) (values.Value, error) {
	w := th.writer()
	for _, a := range args {
		fmt.Fprintf(w, "%s ", a.String())
	}
	fmt.Fprintln(w)
	return values.UndefinedValue, nil
}

func (th *Thread) push(v values.Value) { th.stack = append(th.stack, v) }

func (th *Thread) pop() (values.Value, error) {
	n := len(th.stack)
	if n == 0 {
		return nil, ErrStackUnderflow
	}
	v := th.stack[n-1]
	th.stack = th.stack[:n-1]
	return v, nil
}

func (th *Thread) peek(distance int) (values.Value, error) {
	n := len(th.stack)
	if n <= distance {
		return nil, ErrStackUnderflow
	}
	return th.stack[n-1-distance], nil
}
