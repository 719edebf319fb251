//go:build !(amd64 && unix)

package jit

import "github.com/shadowbrowser/shadow.js/lang/compiler"

// compileNumeric always misses on targets without the native backend; the
// code this package emits is amd64/System-V-specific (SSE2 scalar-double
// instructions, mmap'd pages).
func compileNumeric(chunk *compiler.Chunk) (func() float64, page, bool) {
	return nil, nil, false
}
