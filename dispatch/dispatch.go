// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package dispatch

import (
	"iter"
	"maps"

	"github.com/ezrec/qsapp/probe"
)

// AddRecord exercises struct-passing conventions. The padding fields
// sit between the operands to force non-word alignment; keep them.
type AddRecord struct {
	PadA uint8
	A    uint32
	PadB uint8
	B    uint32
	PadC uint8
	Sum  uint32
}

// ValueFunc is the shape of an Indirect Call Slot target.
type ValueFunc func() uint32

// BinOp is the shape of a binary operator functor.
type BinOp func(a, b int32) int32

var _dispatch_defines = map[string]string{
	"NO_ARGS_VALUE":  "42",
	"SLOT_DEFAULT_A": "10",
	"SLOT_BASE_B":    "20",
}

// Defines for the dispatch layer.
func Defines() iter.Seq2[string, string] {
	return maps.All(_dispatch_defines)
}

// NoArgs takes no arguments and returns a fixed constant.
func NoArgs() uint32 {
	return 42
}

// noArgsStatic is the file-local variant of NoArgs; the local stays
// materialized for inspection.
//
//go:noinline
func noArgsStatic() uint32 {
	val := uint32(42)
	probe.Keep(val)
	return val
}

// Addition returns the sum of two scalar operands.
func Addition(a, b uint32) uint32 {
	return a + b
}

// AdditionPtr returns the sum of two pointed-to operands. The inputs
// are not mutated.
func AdditionPtr(a, b *uint32) uint32 {
	return *a + *b
}

// AdditionPtrRet writes the sum through sum and also returns it. Both
// delivery channels carry the same value.
func AdditionPtrRet(a, b, sum *uint32) uint32 {
	*sum = *a + *b
	return *sum
}

// AdditionStruct receives the record by value: only the local copy's
// Sum field is written, and the caller's record is unaffected. The copy
// is kept materialized through the exit marker.
func AdditionStruct(ms AddRecord) uint32 {
	ms.Sum = ms.A + ms.B
	probe.Keep(ms)
	probe.Default.Emit(probe.EVENT_MARKER, probe.ADDITION_STRUCT_EXIT)
	return ms.Sum
}

// AdditionStructPtr writes the sum into the caller's record.
func AdditionStructPtr(ms *AddRecord) uint32 {
	ms.Sum = ms.A + ms.B
	return ms.Sum
}

// getA returns its operand directly.
//
//go:noinline
func getA() uint32 {
	a := uint32(42)
	return a
}

// getB delivers its operand through the pointer and returns a status.
//
//go:noinline
func getB(b *uint32) uint32 {
	*b = 21
	return 0
}

// AdditionSubcalls sums one operand obtained by direct return and one
// obtained through an output pointer.
func AdditionSubcalls() uint32 {
	a := getA()
	var b uint32
	getB(&b)

	return a + b
}

// ManyArgs sums six operands — more than fit in the argument registers
// of the original target, so the tail spills to the stack there.
func ManyArgs(a, b, c, d, e, f uint32) uint32 {
	return a + b + c + d + e + f
}

// FunctorAdd adds the second operand to the first.
func FunctorAdd(a, b int32) int32 {
	return a + b
}

// FunctorSub subtracts the second operand from the first.
func FunctorSub(a, b int32) int32 {
	return a - b
}

// CustomOperation invokes op on the two operands and returns its
// result. Either functor, or any other BinOp, may be supplied at call
// time.
func CustomOperation(op BinOp, a, b int32) int32 {
	return op(a, b)
}

// StringLen returns the number of bytes in msg before the NUL
// terminator. An unterminated msg faults; the scan is unguarded.
func StringLen(msg []byte) int32 {
	var n int32
	for msg[n] != 0 {
		n++
	}
	return n
}

// SumElements sums elemSz elements into a 32-bit signed accumulator.
func SumElements(elem []uint16, elemSz uint16) (ret int32) {
	for i := uint16(0); i < elemSz; i++ {
		ret += int32(elem[i])
	}
	return
}
