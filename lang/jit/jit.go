// Package jit compiles a narrow, purely-numeric subset of a Chunk (only
// Constant(Number), Add, Sub, Mul, Div, Return) straight to amd64 machine
// code, callable as a native fn() float64. Any chunk outside that subset
// fails to compile and the caller falls back to lang/machine's interpreter.
package jit

import "github.com/shadowbrowser/shadow.js/lang/compiler"

// page is one mapped executable memory region. The amd64 build backs this
// with an mmap'd page released via munmap; the portable stub never
// produces one, since it never maps anything.
type page interface {
	release() error
}

// Compiler owns every executable page it maps on behalf of CompileNumeric
// and releases them all on Close. Callers must not invoke a compiled
// function after Close.
type Compiler struct {
	pages []page
}

// NewCompiler returns a ready-to-use Compiler with nothing mapped yet.
func NewCompiler() *Compiler { return &Compiler{} }

// CompileNumeric attempts to JIT-compile chunk, retaining ownership of any
// executable memory it maps so a later Close can release it. It returns
// ok=false (never an error) for anything outside the supported subset: the
// interpreter is always a safe fallback, so a JIT miss is not itself a
// failure.
func (c *Compiler) CompileNumeric(chunk *compiler.Chunk) (fn func() float64, ok bool) {
	fn, p, ok := compileNumeric(chunk)
	if ok && p != nil {
		c.pages = append(c.pages, p)
	}
	return fn, ok
}

// Close releases every executable page this Compiler has mapped so far. A
// Compiler must not compile further chunks after Close.
func (c *Compiler) Close() error {
	var first error
	for _, p := range c.pages {
		if err := p.release(); err != nil && first == nil {
			first = err
		}
	}
	c.pages = nil
	return first
}

// Supported reports whether chunk's opcodes and constant kinds are entirely
// within the JIT's subset, without attempting to assemble or map memory.
// The chunk must end on a Return so the emitted code cannot run off the end
// of its page.
func Supported(chunk *compiler.Chunk) bool {
	if len(chunk.Code) == 0 || chunk.Code[len(chunk.Code)-1].Op != compiler.Return {
		return false
	}
	for _, instr := range chunk.Code {
		switch instr.Op {
		case compiler.Constant:
			if chunk.Constants[instr.Arg].Kind != compiler.ConstantNumber {
				return false
			}
		case compiler.Add, compiler.Sub, compiler.Mul, compiler.Div, compiler.Return:
		default:
			return false
		}
	}
	return true
}
