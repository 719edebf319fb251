// Package compiler turns an *ast.Chunk into a flat Chunk of bytecode: a
// single linear pass, no resolver, no constant interning. Jump targets are
// patched to absolute addresses as blocks close.
package compiler

import (
	"fmt"

	"github.com/shadowbrowser/shadow.js/lang/ast"
	"github.com/shadowbrowser/shadow.js/lang/token"
)

type compiler struct {
	chunk  Chunk
	errors []error
}

// Compile compiles chunk into bytecode. The returned Chunk holds whatever
// code was emitted. A non-empty error slice means unsupported statements
// were left out, and a statement containing an unsupported expression may
// be only partly emitted, so such a Chunk is not fit to run.
func Compile(chunk *ast.Chunk) (*Chunk, []error) {
	c := &compiler{}
	for _, stmt := range chunk.Stmts {
		c.compileStmt(stmt)
	}
	return &c.chunk, c.errors
}

func (c *compiler) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Errorf(format, args...))
}

// compileStmt emits code for stmt. Statements outside the supported subset
// (return, while, for, function declarations) are rejected with a compile
// error.
func (c *compiler) compileStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.compileExpr(s.X)
		c.chunk.emit(Pop)

	case *ast.LetStmt:
		c.compileExpr(s.Value)
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantString, String: s.Name})
		c.chunk.emitArg(SetGlobal, idx)
		c.chunk.emit(Pop)

	case *ast.ConstStmt:
		c.compileExpr(s.Value)
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantString, String: s.Name})
		c.chunk.emitArg(SetGlobal, idx)
		c.chunk.emit(Pop)

	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			c.compileStmt(inner)
		}

	case *ast.IfStmt:
		c.compileExpr(s.Cond)
		jumpIfFalse := c.chunk.emitJump(JumpIfFalse)
		c.compileStmt(s.Then)
		jumpEnd := c.chunk.emitJump(Jump)
		c.chunk.patchJump(jumpIfFalse)
		if s.Alt != nil {
			c.compileStmt(s.Alt)
		}
		c.chunk.patchJump(jumpEnd)

	default:
		c.errorf("statement not supported by the compiler: %T", stmt)
	}
}

func (c *compiler) compileExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantNumber, Number: e.Value})
		c.chunk.emitArg(Constant, idx)

	case *ast.StringExpr:
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantString, String: e.Value})
		c.chunk.emitArg(Constant, idx)

	case *ast.BoolExpr:
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantBool, Bool: e.Value})
		c.chunk.emitArg(Constant, idx)

	case *ast.NullExpr:
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantNull})
		c.chunk.emitArg(Constant, idx)

	case *ast.UndefinedExpr:
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantUndefined})
		c.chunk.emitArg(Constant, idx)

	case *ast.IdentExpr:
		idx := c.chunk.addConstant(ConstantValue{Kind: ConstantString, String: e.Name})
		c.chunk.emitArg(GetGlobal, idx)

	case *ast.InfixExpr:
		c.compileExpr(e.Left)
		c.compileExpr(e.Right)
		op, ok := infixOps[e.Op]
		if !ok {
			c.errorf("operator not supported by the compiler: %s", e.Op.GoString())
			return
		}
		c.chunk.emit(op)

	case *ast.CallExpr:
		c.compileExpr(e.Fn)
		for _, arg := range e.Args {
			c.compileExpr(arg)
		}
		c.chunk.emitArg(Call, len(e.Args))

	case *ast.ArrayExpr:
		for _, elem := range e.Elems {
			c.compileExpr(elem)
		}
		c.chunk.emitArg(Array, len(e.Elems))

	case *ast.ObjectExpr:
		for i, key := range e.Keys {
			c.compileExpr(key)
			c.compileExpr(e.Values[i])
		}
		c.chunk.emitArg(Object, len(e.Keys))

	case *ast.IndexExpr:
		c.compileExpr(e.Left)
		c.compileExpr(e.Index)
		c.chunk.emit(GetIndex)

	default:
		c.errorf("expression not supported by the compiler: %T", expr)
	}
}

var infixOps = map[token.Token]OpCode{
	token.PLUS:  Add,
	token.MINUS: Sub,
	token.STAR:  Mul,
	token.SLASH: Div,
	token.EQEQ:  Equal,
	token.NEQ:   NotEqual,
	token.LT:    LessThan,
	token.GT:    GreaterThan,
}
