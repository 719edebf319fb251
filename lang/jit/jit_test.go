package jit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowbrowser/shadow.js/lang/compiler"
	"github.com/shadowbrowser/shadow.js/lang/jit"
	"github.com/shadowbrowser/shadow.js/lang/parser"
)

func compileChunk(t *testing.T, src string) *compiler.Chunk {
	t.Helper()
	p := parser.New([]byte(src))
	chunk := p.ParseChunk()
	require.Empty(t, p.Errors())
	code, errs := compiler.Compile(chunk)
	require.Empty(t, errs)
	return code
}

func TestSupportedAcceptsPureArithmetic(t *testing.T) {
	chunk := compileChunk(t, `1 + 2 * 3 - 4 / 2;`)
	// ExprStmt appends a Pop, which Supported doesn't recognize; swap it for
	// the Return the subset exits through.
	chunk.Code[len(chunk.Code)-1] = compiler.Instruction{Op: compiler.Return}
	require.True(t, jit.Supported(chunk))
}

func TestSupportedRejectsChunkWithoutReturn(t *testing.T) {
	chunk := &compiler.Chunk{
		Constants: []compiler.ConstantValue{{Kind: compiler.ConstantNumber, Number: 1}},
		Code:      []compiler.Instruction{{Op: compiler.Constant, Arg: 0}},
	}
	require.False(t, jit.Supported(chunk))
}

func TestSupportedRejectsStringConstant(t *testing.T) {
	chunk := compileChunk(t, `let x = "a";`)
	require.False(t, jit.Supported(chunk))
}

func TestSupportedRejectsNonArithmeticOpcode(t *testing.T) {
	chunk := compileChunk(t, `let x = [1];`)
	require.False(t, jit.Supported(chunk))
}

func TestSupportedRejectsComparison(t *testing.T) {
	chunk := compileChunk(t, `1 < 2;`)
	chunk.Code[len(chunk.Code)-1] = compiler.Instruction{Op: compiler.Return}
	require.False(t, jit.Supported(chunk))
}
