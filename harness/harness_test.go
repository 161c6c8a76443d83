package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/qsapp/dispatch"
	"github.com/ezrec/qsapp/target"
)

func newHarness(t *testing.T) (h *Harness) {
	tg := target.NewTarget()
	tg.Reset()

	// The slot is process-wide; start each harness from the empty state.
	dispatch.RegFuncPtrNull()

	h = New(tg)
	return
}

func TestEval(t *testing.T) {
	assert := assert.New(t)

	h := newHarness(t)

	table := [](struct {
		expr   string
		expect string
	}){
		{"example_NoArgs()", "42"},
		{"example_Addition(31, 11)", "42"},
		{"example_AdditionPtr(9, 12)", "21"},
		{"example_AdditionPtrRet(10, 999)", "(1009, 1009)"},
		{"example_AdditionStruct(10, 20)", "(30, 0)"},
		{"example_AdditionStructPtr(10, 20)", "30"},
		{"example_AdditionSubcalls()", "63"},
		{"example_ManyArgs(1, 2, 3, 4, 5, 6)", "21"},
		{"example_FunctorAdd(5, 3)", "8"},
		{"example_FunctorSub(5, 3)", "2"},
		{"example_CustomOperation(example_FunctorAdd, 5, 3)", "8"},
		{"example_CustomOperation(example_FunctorSub, 5, 3)", "2"},
		{"example_StringLen('hello')", "5"},
		{"example_StringLen('')", "0"},
		{"example_SumElements([1, 2, 3])", "6"},
		{"example_SumElements([])", "0"},
		{"quick_sort([4, 3, 5, 2, 1, 3, 2, 3])", "[1, 2, 2, 3, 3, 3, 4, 5]"},
	}

	for _, entry := range table {
		val, err := h.Eval(entry.expr)
		if assert.NoError(err, entry.expr) {
			assert.Equal(entry.expect, val.String(), entry.expr)
		}
	}
}

func TestEval_Slot(t *testing.T) {
	assert := assert.New(t)

	h := newHarness(t)

	table := [](struct {
		expr   string
		expect string
	}){
		{"example_FunctionPointers()", "30"},
		{"reg_func_ptr_a()", "None"},
		{"example_FunctionPointers()", "62"},
		{"reg_func_ptr_null()", "None"},
		{"example_FunctionPointers()", "30"},
	}

	for _, entry := range table {
		val, err := h.Eval(entry.expr)
		if assert.NoError(err, entry.expr) {
			assert.Equal(entry.expect, val.String(), entry.expr)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	assert := assert.New(t)

	h := newHarness(t)

	_, err := h.Eval("example_Addition(1)")
	assert.Error(err)

	_, err = h.Eval("example_CustomOperation(42, 5, 3)")
	assert.ErrorIs(err, ErrNotCallable)

	_, err = h.Eval("reg_func_ptr_param(42)")
	assert.ErrorIs(err, ErrNotCallable)

	_, err = h.Eval("no_such_symbol()")
	assert.Error(err)
}

func TestRunScript(t *testing.T) {
	assert := assert.New(t)

	h := newHarness(t)

	dict, err := h.RunScript("testdata/host_checks.star")
	assert.NoError(err)

	table := [](struct {
		global string
		expect string
	}){
		{"sum_default", "30"},
		{"sum_registered", "62"},
		{"sum_param", "43"},
		{"sum_cleared", "30"},
		{"custom", "10"},
		{"sorted_seq", "[1, 2, 2, 3, 3, 3, 4, 5]"},
		{"passes", "2"},
	}

	for _, entry := range table {
		val, ok := dict[entry.global]
		if assert.True(ok, entry.global) {
			assert.Equal(entry.expect, val.String(), entry.global)
		}
	}
}

func TestRunScript_Missing(t *testing.T) {
	assert := assert.New(t)

	h := newHarness(t)

	_, err := h.RunScript("testdata/no_such_script.star")
	assert.Error(err)
}
