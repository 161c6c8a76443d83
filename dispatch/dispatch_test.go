package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/qsapp/probe"
)

func TestNoArgs(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(42), NoArgs())
	assert.Equal(uint32(42), noArgsStatic())
}

func TestAddition(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		a, b   uint32
		expect uint32
	}){
		{31, 11, 42},
		{0, 0, 0},
		{0xffffffff, 1, 0}, // unsigned wraparound, as on the target
	}

	for _, entry := range table {
		assert.Equal(entry.expect, Addition(entry.a, entry.b))
	}
}

func TestAdditionPtr(t *testing.T) {
	assert := assert.New(t)

	a := uint32(9)
	b := uint32(12)
	assert.Equal(uint32(21), AdditionPtr(&a, &b))
	assert.Equal(uint32(9), a)
	assert.Equal(uint32(12), b)
}

func TestAdditionPtrRet(t *testing.T) {
	assert := assert.New(t)

	a := uint32(10)
	b := uint32(999)
	var sum uint32

	ret := AdditionPtrRet(&a, &b, &sum)

	// Dual delivery: both channels must agree.
	assert.Equal(uint32(1009), ret)
	assert.Equal(uint32(1009), sum)
}

func TestAdditionStruct(t *testing.T) {
	assert := assert.New(t)

	ch := probe.Default.Watch(probe.ADDITION_STRUCT_EXIT)

	ms := AddRecord{A: 10, B: 20}
	ret := AdditionStruct(ms)

	assert.Equal(uint32(30), ret)
	// Value semantics: the caller's record is unaffected.
	assert.Equal(uint32(0), ms.Sum)

	assert.Equal(probe.ADDITION_STRUCT_EXIT, <-ch)
}

func TestAdditionStructPtr(t *testing.T) {
	assert := assert.New(t)

	ms := AddRecord{A: 10, B: 20}
	ret := AdditionStructPtr(&ms)

	assert.Equal(uint32(30), ret)
	assert.Equal(uint32(30), ms.Sum)
}

func TestAdditionSubcalls(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(63), AdditionSubcalls())
}

func TestManyArgs(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(21), ManyArgs(1, 2, 3, 4, 5, 6))
}

func TestFunctors(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(8), FunctorAdd(5, 3))
	assert.Equal(int32(2), FunctorSub(5, 3))
	assert.Equal(int32(-2), FunctorSub(3, 5))
}

func TestCustomOperation(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     BinOp
		a, b   int32
		expect int32
	}){
		{"add", FunctorAdd, 5, 3, 8},
		{"sub", FunctorSub, 5, 3, 2},
		{"closure", func(a, b int32) int32 { return a * b }, 5, 3, 15},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, CustomOperation(entry.op, entry.a, entry.b), entry.name)
	}
}

func TestFunctionPointerSlot(t *testing.T) {
	assert := assert.New(t)

	RegFuncPtrNull()
	assert.Equal(uint32(30), FunctionPointers())

	RegFuncPtrA()
	assert.Equal(uint32(62), FunctionPointers())

	RegFuncPtrNull()
	assert.Equal(uint32(30), FunctionPointers())

	RegFuncPtrParam(func() uint32 { return 1 })
	assert.Equal(uint32(21), FunctionPointers())

	// A nil target reads as an empty slot: default path, no call.
	RegFuncPtrParam(nil)
	assert.Equal(uint32(30), FunctionPointers())

	RegFuncPtrNull()
}

func TestStringLen(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(5), StringLen([]byte("hello\x00")))
	assert.Equal(int32(0), StringLen([]byte("\x00")))
	assert.Equal(int32(3), StringLen([]byte("abc\x00def\x00")))

	// Unterminated input is a contract violation and faults.
	assert.Panics(func() { StringLen([]byte("abc")) })
}

func TestSumElements(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		elem   []uint16
		sz     uint16
		expect int32
	}){
		{"three", []uint16{1, 2, 3}, 3, 6},
		{"empty", nil, 0, 0},
		{"partial", []uint16{1, 2, 3, 4}, 2, 3},
		{"max_u16", []uint16{0xffff, 0xffff}, 2, 131070},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, SumElements(entry.elem, entry.sz), entry.name)
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, val := range Defines() {
		defines[key] = val
	}

	assert.Equal("42", defines["NO_ARGS_VALUE"])
	assert.Equal("10", defines["SLOT_DEFAULT_A"])
	assert.Equal("20", defines["SLOT_BASE_B"])
}
