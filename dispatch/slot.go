// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package dispatch

import (
	"sync/atomic"
)

// The Indirect Call Slot: process-wide, at most one target at a time.
// Written only by the three Reg* mutators, read only by
// FunctionPointers. Loads are atomic because an observer may sample the
// slot at any instruction boundary.
var funcA atomic.Pointer[ValueFunc]

// FunctionPointers returns the sum of a fixed operand and either the
// default 10 or, when a slot target is registered, that target's
// result. The result depends on process-wide state at call time.
func FunctionPointers() uint32 {
	a := uint32(10)
	b := uint32(20)

	if fn := funcA.Load(); fn != nil && *fn != nil {
		a = (*fn)()
	}

	return a + b
}

// RegFuncPtrA points the slot at the fixed function getA.
func RegFuncPtrA() {
	fn := ValueFunc(getA)
	funcA.Store(&fn)
}

// RegFuncPtrNull empties the slot.
func RegFuncPtrNull() {
	funcA.Store(nil)
}

// RegFuncPtrParam points the slot at the supplied target.
func RegFuncPtrParam(fn ValueFunc) {
	funcA.Store(&fn)
}
