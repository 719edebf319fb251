//go:build amd64 && unix

package jit

import (
	"math"
	"syscall"
	"unsafe"

	"github.com/shadowbrowser/shadow.js/lang/compiler"
)

// assembler emits raw amd64 machine code for the numeric subset of a Chunk:
// push rbp / mov rbp,rsp prologue, XMM0/XMM1 native-stack push/pop helpers,
// scalar-double add/sub/mul/div, mov rsp,rbp / pop rbp / ret epilogue.
type assembler struct {
	code []byte
}

func (a *assembler) emitByte(b byte) { a.code = append(a.code, b) }
func (a *assembler) emitBytes(b ...byte) { a.code = append(a.code, b...) }

func (a *assembler) emitU64(v uint64) {
	for i := 0; i < 8; i++ {
		a.emitByte(byte(v >> (8 * i)))
	}
}

func (a *assembler) pushRBP() { a.emitByte(0x55) }
func (a *assembler) movRBPRSP() { a.emitBytes(0x48, 0x89, 0xE5) }
func (a *assembler) movRSPRBP() { a.emitBytes(0x48, 0x89, 0xEC) }
func (a *assembler) popRBP() { a.emitByte(0x5D) }
func (a *assembler) ret() { a.emitByte(0xC3) }

func (a *assembler) movXMM0Imm(v float64) {
	a.emitBytes(0x48, 0xB8)
	a.emitU64(math.Float64bits(v))
	a.emitBytes(0x66, 0x48, 0x0F, 0x6E, 0xC0)
}

func (a *assembler) pushXMM0() {
	a.emitBytes(0x48, 0x83, 0xEC, 0x08)
	a.emitBytes(0xF2, 0x0F, 0x11, 0x04, 0x24)
}

func (a *assembler) popXMM0() {
	a.emitBytes(0xF2, 0x0F, 0x10, 0x04, 0x24)
	a.emitBytes(0x48, 0x83, 0xC4, 0x08)
}

func (a *assembler) popXMM1() {
	a.emitBytes(0xF2, 0x0F, 0x10, 0x0C, 0x24)
	a.emitBytes(0x48, 0x83, 0xC4, 0x08)
}

func (a *assembler) addsdXMM0XMM1() { a.emitBytes(0xF2, 0x0F, 0x58, 0xC1) }
func (a *assembler) subsdXMM0XMM1() { a.emitBytes(0xF2, 0x0F, 0x5C, 0xC1) }
func (a *assembler) mulsdXMM0XMM1() { a.emitBytes(0xF2, 0x0F, 0x59, 0xC1) }
func (a *assembler) divsdXMM0XMM1() { a.emitBytes(0xF2, 0x0F, 0x5E, 0xC1) }

// compileNumeric assembles chunk and maps it as executable memory. It
// misses (ok=false) on any opcode or constant kind outside the supported
// subset, rather than erroring: lang/machine's interpreter always covers
// the same ground, so a JIT miss is never fatal to the caller. The
// returned page is the caller's (a Compiler's) to release via Close.
func compileNumeric(chunk *compiler.Chunk) (func() float64, page, bool) {
	if !Supported(chunk) {
		return nil, nil, false
	}

	asm := &assembler{}
	asm.pushRBP()
	asm.movRBPRSP()

	for _, instr := range chunk.Code {
		switch instr.Op {
		case compiler.Constant:
			asm.movXMM0Imm(chunk.Constants[instr.Arg].Number)
			asm.pushXMM0()
		case compiler.Add:
			asm.popXMM1()
			asm.popXMM0()
			asm.addsdXMM0XMM1()
			asm.pushXMM0()
		case compiler.Sub:
			asm.popXMM1()
			asm.popXMM0()
			asm.subsdXMM0XMM1()
			asm.pushXMM0()
		case compiler.Mul:
			asm.popXMM1()
			asm.popXMM0()
			asm.mulsdXMM0XMM1()
			asm.pushXMM0()
		case compiler.Div:
			asm.popXMM1()
			asm.popXMM0()
			asm.divsdXMM0XMM1()
			asm.pushXMM0()
		case compiler.Return:
			asm.popXMM0()
			asm.movRSPRBP()
			asm.popRBP()
			asm.ret()
		}
	}

	mem, err := allocExecutable(asm.code)
	if err != nil {
		return nil, nil, false
	}
	return makeCallable(mem), mem, true
}

// execMemory is a W^X-lifecycle mmap'd page: mapped read+write while code
// is copied in, then mprotect'd to read+exec before it is ever called. It
// implements page so a Compiler can hold onto it and munmap it on Close.
type execMemory struct {
	data []byte
}

func (mem execMemory) release() error {
	return syscall.Munmap(mem.data)
}

func allocExecutable(code []byte) (execMemory, error) {
	page := syscall.Getpagesize()
	size := (len(code) + page - 1) &^ (page - 1)
	data, err := syscall.Mmap(-1, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return execMemory{}, err
	}
	copy(data, code)
	if err := syscall.Mprotect(data, syscall.PROT_READ|syscall.PROT_EXEC); err != nil {
		syscall.Munmap(data)
		return execMemory{}, err
	}
	return execMemory{data: data}, nil
}

// makeCallable reinterprets the mapped page's first byte as a Go func
// value. Go represents a func value as a pointer to a struct whose first
// word is the code's entry PC; for an argument-less function returning one
// float64 in XMM0, that representation lines up with the assembled System V
// prologue/epilogue above.
func makeCallable(mem execMemory) func() float64 {
	funcval := unsafe.Pointer(&struct{ code *byte }{&mem.data[0]})
	return *(*func() float64)(unsafe.Pointer(&funcval))
}

