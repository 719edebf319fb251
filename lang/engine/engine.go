// Package engine composes the scan/parse/compile/run pipeline into a single
// entry point, the way internal/maincmd composes the equivalent phases
// behind the CLI.
package engine

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/shadowbrowser/shadow.js/lang/ast"
	"github.com/shadowbrowser/shadow.js/lang/compiler"
	"github.com/shadowbrowser/shadow.js/lang/machine"
	"github.com/shadowbrowser/shadow.js/lang/parser"
)

// Engine evaluates shadow.js source. The zero value is ready to use.
type Engine struct {
	debug bool
}

// New returns a ready-to-use Engine.
func New() *Engine { return &Engine{} }

// SetDebug enables or disables per-opcode tracing on the thread created by
// subsequent Eval calls.
func (e *Engine) SetDebug(debug bool) { e.debug = debug }

// Eval parses, compiles, and runs src, writing anything the program prints
// to stdout and any debug trace (see SetDebug) to stderr. It returns the
// first error from any stage: parse errors and compile errors (each stage
// may report more than one) are joined into a single error via
// errors.Join; a runtime error from the machine is returned as-is.
func (e *Engine) Eval(ctx context.Context, src []byte, stdout, stderr io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := parser.New(src)
	chunk := p.ParseChunk()
	if errs := p.Errors(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	if e.debug {
		// dump the AST before the per-opcode trace the machine writes;
		// default to the process stderr like the machine does
		w := stderr
		if w == nil {
			w = os.Stderr
		}
		pr := &ast.Printer{Output: w}
		if err := pr.Print(chunk); err != nil {
			return err
		}
	}

	code, errs := compiler.Compile(chunk)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	th := machine.NewThread()
	defer th.Close()
	th.Stdout = stdout
	th.Stderr = stderr
	th.Debug = e.debug
	return th.Run(code)
}
