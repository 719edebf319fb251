//go:build amd64 && unix

package jit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowbrowser/shadow.js/lang/compiler"
	"github.com/shadowbrowser/shadow.js/lang/jit"
)

// arithmeticChunk hand-assembles (2 + 3) * 4 followed by Return, since the
// compiler never emits Return but the JIT's subset includes it as its sole
// exit instruction.
func arithmeticChunk() *compiler.Chunk {
	return &compiler.Chunk{
		Constants: []compiler.ConstantValue{
			{Kind: compiler.ConstantNumber, Number: 2},
			{Kind: compiler.ConstantNumber, Number: 3},
			{Kind: compiler.ConstantNumber, Number: 4},
		},
		Code: []compiler.Instruction{
			{Op: compiler.Constant, Arg: 0},
			{Op: compiler.Constant, Arg: 1},
			{Op: compiler.Add},
			{Op: compiler.Constant, Arg: 2},
			{Op: compiler.Mul},
			{Op: compiler.Return},
		},
	}
}

func TestCompileNumericExecutesArithmetic(t *testing.T) {
	c := jit.NewCompiler()
	defer c.Close()

	fn, ok := c.CompileNumeric(arithmeticChunk())
	require.True(t, ok)
	require.Equal(t, 20.0, fn())
}

func TestCompileNumericMissesOnNonNumericConstant(t *testing.T) {
	c := jit.NewCompiler()
	defer c.Close()

	chunk := &compiler.Chunk{
		Constants: []compiler.ConstantValue{{Kind: compiler.ConstantString, String: "a"}},
		Code:      []compiler.Instruction{{Op: compiler.Constant, Arg: 0}, {Op: compiler.Return}},
	}
	_, ok := c.CompileNumeric(chunk)
	require.False(t, ok)
}

func TestCompilerCloseReleasesMappedPages(t *testing.T) {
	c := jit.NewCompiler()
	fn, ok := c.CompileNumeric(arithmeticChunk())
	require.True(t, ok)
	require.Equal(t, 20.0, fn())
	require.NoError(t, c.Close())
}
