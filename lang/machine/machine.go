package machine

import (
	"fmt"

	"github.com/shadowbrowser/shadow.js/lang/compiler"
	"github.com/shadowbrowser/shadow.js/lang/heap"
	"github.com/shadowbrowser/shadow.js/lang/values"
)

// Run executes chunk to completion on th. It returns the first runtime error
// encountered, or nil if the chunk ran to its end (a bare Return, or falling
// off the end of Code, both count as success).
//
// Run first offers chunk to lang/jit: if chunk is within the JIT's
// purely-numeric subset, the compiled native function runs instead of the
// interpreter loop below, and its result is pushed as the chunk's result.
// A JIT miss is not an error; it just falls through to the interpreter,
// which covers every chunk the JIT doesn't.
func (th *Thread) Run(chunk *compiler.Chunk) error {
	if fn, ok := th.jitCompiler.CompileNumeric(chunk); ok {
		th.push(values.Number(fn()))
		return nil
	}

	ip := 0
	for ip < len(chunk.Code) {
		if th.Heap.ShouldCollect(ip) {
			th.collect(chunk)
		}

		instr := chunk.Code[ip]
		if th.Debug {
			th.traceInstr(chunk, ip, instr)
		}
		ip++

		switch instr.Op {
		case compiler.Constant:
			v, err := th.loadConstant(chunk.Constants[instr.Arg])
			if err != nil {
				return err
			}
			th.push(v)

		case compiler.Add:
			if err := th.binaryAdd(); err != nil {
				return err
			}

		case compiler.Sub:
			if err := th.binaryNumeric(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}

		case compiler.Mul:
			if err := th.binaryNumeric(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}

		case compiler.Div:
			if err := th.binaryNumeric(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}

		case compiler.LessThan:
			if err := th.binaryCompare(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		case compiler.GreaterThan:
			if err := th.binaryCompare(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}

		case compiler.Equal, compiler.NotEqual:
			b, err := th.pop()
			if err != nil {
				return err
			}
			a, err := th.pop()
			if err != nil {
				return err
			}
			eq := valuesEqual(a, b)
			if instr.Op == compiler.NotEqual {
				eq = !eq
			}
			th.push(values.Boolean(eq))

		case compiler.Pop:
			if _, err := th.pop(); err != nil {
				return err
			}

		case compiler.GetGlobal:
			name := chunk.Constants[instr.Arg].String
			v, ok := th.Globals.Get(name)
			if !ok {
				return &ReferenceError{Name: name}
			}
			th.push(v)

		case compiler.SetGlobal:
			// peek, not pop: the binding's value stays on the stack for
			// the Pop (or further use) the compiler emits after it.
			v, err := th.peek(0)
			if err != nil {
				return err
			}
			name := chunk.Constants[instr.Arg].String
			th.Globals.Put(name, v)

		case compiler.Call:
			if err := th.call(instr.Arg); err != nil {
				return err
			}

		case compiler.Array:
			if err := th.buildArray(instr.Arg); err != nil {
				return err
			}

		case compiler.Object:
			if err := th.buildObject(instr.Arg); err != nil {
				return err
			}

		case compiler.GetIndex:
			if err := th.getIndex(); err != nil {
				return err
			}

		case compiler.SetIndex:
			if err := th.setIndex(); err != nil {
				return err
			}

		case compiler.Jump:
			ip = instr.Arg

		case compiler.JumpIfFalse:
			cond, err := th.peek(0)
			if err != nil {
				return err
			}
			if !cond.Truth() {
				ip = instr.Arg
			}
			if _, err := th.pop(); err != nil {
				return err
			}

		case compiler.Return:
			return nil

		default:
			return &TypeError{Msg: "unknown opcode " + instr.Op.String()}
		}
	}
	return nil
}

// traceInstr writes one debug-trace line for the instruction about to
// execute: address, opcode, operand if the opcode carries one, and the
// referenced constant for the opcodes that index the pool.
func (th *Thread) traceInstr(chunk *compiler.Chunk, ip int, instr compiler.Instruction) {
	w := th.errWriter()
	fmt.Fprintf(w, "%04d %s", ip, instr.Op)
	if instr.Op.HasArg() {
		fmt.Fprintf(w, " %d", instr.Arg)
	}
	switch instr.Op {
	case compiler.Constant, compiler.GetGlobal, compiler.SetGlobal:
		fmt.Fprintf(w, " (%s)", chunk.Constants[instr.Arg].Describe())
	}
	fmt.Fprintln(w)
}

func (th *Thread) loadConstant(c compiler.ConstantValue) (values.Value, error) {
	switch c.Kind {
	case compiler.ConstantNumber:
		return values.Number(c.Number), nil
	case compiler.ConstantString:
		return values.NewString(c.String), nil
	case compiler.ConstantBool:
		return values.Boolean(c.Bool), nil
	case compiler.ConstantNull:
		return values.NullValue, nil
	case compiler.ConstantUndefined:
		return values.UndefinedValue, nil
	default:
		return nil, &TypeError{Msg: "unrecognized constant kind"}
	}
}

// binaryAdd implements Add's dual dispatch: Number+Number or String+String.
// Every other combination is a type error, there is no implicit coercion.
func (th *Thread) binaryAdd() error {
	b, err := th.pop()
	if err != nil {
		return err
	}
	a, err := th.pop()
	if err != nil {
		return err
	}
	if an, ok := a.(values.Number); ok {
		if bn, ok := b.(values.Number); ok {
			th.push(an + bn)
			return nil
		}
	}
	if as, ok := a.(values.String); ok {
		if bs, ok := b.(values.String); ok {
			th.push(as.Concat(bs))
			return nil
		}
	}
	return &TypeError{Msg: "operands of + must both be numbers or both be strings"}
}

func (th *Thread) binaryNumeric(f func(a, b float64) float64) error {
	b, err := th.pop()
	if err != nil {
		return err
	}
	a, err := th.pop()
	if err != nil {
		return err
	}
	an, ok := a.(values.Number)
	bn, ok2 := b.(values.Number)
	if !ok || !ok2 {
		return &TypeError{Msg: "operand must be a number"}
	}
	th.push(values.Number(f(float64(an), float64(bn))))
	return nil
}

func (th *Thread) binaryCompare(f func(a, b float64) bool) error {
	b, err := th.pop()
	if err != nil {
		return err
	}
	a, err := th.pop()
	if err != nil {
		return err
	}
	an, ok := a.(values.Number)
	bn, ok2 := b.(values.Number)
	if !ok || !ok2 {
		return &TypeError{Msg: "operand must be a number"}
	}
	th.push(values.Boolean(f(float64(an), float64(bn))))
	return nil
}

// valuesEqual: scalars compare by value, handles (array/object/function)
// compare by allocation identity, and native functions compare by pointer
// identity. Values of different dynamic types are never equal.
func valuesEqual(a, b values.Value) bool {
	if ah, ok := a.(values.Handle); ok {
		bh, ok := b.(values.Handle)
		return ok && values.SameHandle(ah, bh)
	}
	if af, ok := a.(*values.NativeFunction); ok {
		bf, ok := b.(*values.NativeFunction)
		return ok && af == bf
	}
	switch av := a.(type) {
	case values.Number:
		bv, ok := b.(values.Number)
		return ok && av == bv
	case values.Boolean:
		bv, ok := b.(values.Boolean)
		return ok && av == bv
	case values.String:
		bv, ok := b.(values.String)
		return ok && av.Value() == bv.Value()
	case values.Null:
		_, ok := b.(values.Null)
		return ok
	case values.Undefined:
		_, ok := b.(values.Undefined)
		return ok
	default:
		return false
	}
}

// call pops argc arguments (reversing them back to call order), then the
// callee. Only native functions can be dispatched; function literals exist
// in the value model but have no call semantics yet.
func (th *Thread) call(argc int) error {
	args := make([]values.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		v, err := th.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	callee, err := th.pop()
	if err != nil {
		return err
	}
	fn, ok := callee.(*values.NativeFunction)
	if !ok {
		return &TypeError{Msg: "can only call functions"}
	}
	result, err := fn.Fn(args)
	if err != nil {
		return err
	}
	th.push(result)
	return nil
}

func (th *Thread) buildArray(n int) error {
	elems := make([]values.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := th.pop()
		if err != nil {
			return err
		}
		elems[i] = v
	}
	th.push(values.NewArray(th.Heap, elems))
	return nil
}

func (th *Thread) buildObject(n int) error {
	keys := make([]string, n)
	vals := make([]values.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := th.pop()
		if err != nil {
			return err
		}
		k, err := th.pop()
		if err != nil {
			return err
		}
		ks, ok := k.(values.String)
		if !ok {
			return &TypeError{Msg: "object keys must be strings"}
		}
		keys[i] = ks.Value()
		vals[i] = v
	}
	th.push(values.NewObject(th.Heap, keys, vals))
	return nil
}

// getIndex pops index then target: array indexing is numeric with
// out-of-range reading as Undefined, object indexing is by string key with
// a missing key reading as Undefined.
func (th *Thread) getIndex() error {
	index, err := th.pop()
	if err != nil {
		return err
	}
	target, err := th.pop()
	if err != nil {
		return err
	}
	switch t := target.(type) {
	case values.ArrayValue:
		idx, ok := index.(values.Number)
		if !ok {
			return &TypeError{Msg: "array index must be a number"}
		}
		v, ok := t.Get(int(idx))
		if !ok {
			th.push(values.UndefinedValue)
			return nil
		}
		th.push(v)
		return nil

	case values.ObjectValue:
		key, ok := index.(values.String)
		if !ok {
			return &TypeError{Msg: "object key must be a string"}
		}
		v, ok := t.Get(key.Value())
		if !ok {
			th.push(values.UndefinedValue)
			return nil
		}
		th.push(v)
		return nil

	default:
		return &TypeError{Msg: "cannot index into " + target.Type()}
	}
}

// setIndex pops value, index, then target. Arrays accept idx == len
// (append) or idx < len (replace); idx > len is a bounds error, since
// sparse arrays are not supported. Objects always insert/overwrite.
func (th *Thread) setIndex() error {
	value, err := th.pop()
	if err != nil {
		return err
	}
	index, err := th.pop()
	if err != nil {
		return err
	}
	target, err := th.pop()
	if err != nil {
		return err
	}
	switch t := target.(type) {
	case values.ArrayValue:
		idx, ok := index.(values.Number)
		if !ok {
			return &TypeError{Msg: "array index must be a number"}
		}
		if !t.Set(int(idx), value) {
			return &BoundsError{Msg: "sparse arrays are not supported"}
		}
		th.push(value)
		return nil

	case values.ObjectValue:
		key, ok := index.(values.String)
		if !ok {
			return &TypeError{Msg: "object key must be a string"}
		}
		t.Set(key.Value(), value)
		th.push(value)
		return nil

	default:
		return &TypeError{Msg: "cannot index into " + target.Type()}
	}
}

// collect gathers roots from the operand stack, the global environment, and
// the executing chunk's constant pool, type-asserting each Value down to
// the heap Handle it wraps (if any), then runs a collection. Scalars
// (Number, Boolean, String, Null, Undefined) are not Handles and are simply
// skipped; the constant pool holds no Handle today (no ConstantKind yet
// produces a function template), but is traced the same way the stack and
// Globals are so a future constant kind that does needs no change here.
func (th *Thread) collect(chunk *compiler.Chunk) {
	var roots []*heap.Object
	collectRoot := func(v values.Value) {
		if h, ok := v.(values.Handle); ok {
			roots = append(roots, h.Object())
		}
	}
	for _, v := range th.stack {
		collectRoot(v)
	}
	th.Globals.Iter(func(_ string, v values.Value) bool {
		collectRoot(v)
		return false
	})
	for _, c := range chunk.Constants {
		if v, err := th.loadConstant(c); err == nil {
			collectRoot(v)
		}
	}
	th.Heap.Collect(roots)
}
