// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package harness exposes the qsapp target to host-side Starlark
// scripts. Scripts call the dispatch test points by their target symbol
// names and drive the main loop, the same role the debugger-side test
// suite plays against real hardware.
package harness

import (
	"log"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/qsapp/dispatch"
	"github.com/ezrec/qsapp/target"
)

// Harness evaluates host-side scripts against a live target.
type Harness struct {
	Verbose bool
	Target  *target.Target

	globals starlark.StringDict
}

// New creates a harness bound to tg. Every dispatch test point is
// predeclared under its target symbol name.
func New(tg *target.Target) (h *Harness) {
	h = &Harness{Target: tg}

	h.globals = starlark.StringDict{
		"example_NoArgs": starlark.NewBuiltin("example_NoArgs",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(dispatch.NoArgs())), nil
			}),
		"example_Addition": starlark.NewBuiltin("example_Addition",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(dispatch.Addition(uint32(a), uint32(bv)))), nil
			}),
		"example_AdditionPtr": starlark.NewBuiltin("example_AdditionPtr",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				// The script has no pointers; the harness owns the
				// pointed-to storage, like the host-side allocator on
				// real hardware.
				ua, ub := uint32(a), uint32(bv)
				return starlark.MakeInt(int(dispatch.AdditionPtr(&ua, &ub))), nil
			}),
		"example_AdditionPtrRet": starlark.NewBuiltin("example_AdditionPtrRet",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				ua, ub := uint32(a), uint32(bv)
				var sum uint32
				ret := dispatch.AdditionPtrRet(&ua, &ub, &sum)
				// Both delivery channels, for scripts that check they agree.
				return starlark.Tuple{
					starlark.MakeInt(int(ret)),
					starlark.MakeInt(int(sum)),
				}, nil
			}),
		"example_AdditionStruct": starlark.NewBuiltin("example_AdditionStruct",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				ms := dispatch.AddRecord{A: uint32(a), B: uint32(bv)}
				ret := dispatch.AdditionStruct(ms)
				// Value semantics: the caller's record is untouched.
				return starlark.Tuple{
					starlark.MakeInt(int(ret)),
					starlark.MakeInt(int(ms.Sum)),
				}, nil
			}),
		"example_AdditionStructPtr": starlark.NewBuiltin("example_AdditionStructPtr",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				ms := dispatch.AddRecord{A: uint32(a), B: uint32(bv)}
				dispatch.AdditionStructPtr(&ms)
				return starlark.MakeInt(int(ms.Sum)), nil
			}),
		"example_AdditionSubcalls": starlark.NewBuiltin("example_AdditionSubcalls",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(dispatch.AdditionSubcalls())), nil
			}),
		"example_ManyArgs": starlark.NewBuiltin("example_ManyArgs",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv, c, d, e, ff int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 6, &a, &bv, &c, &d, &e, &ff); err != nil {
					return nil, err
				}
				sum := dispatch.ManyArgs(uint32(a), uint32(bv), uint32(c),
					uint32(d), uint32(e), uint32(ff))
				return starlark.MakeInt(int(sum)), nil
			}),
		"example_FunctorAdd": starlark.NewBuiltin("example_FunctorAdd",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(dispatch.FunctorAdd(int32(a), int32(bv)))), nil
			}),
		"example_FunctorSub": starlark.NewBuiltin("example_FunctorSub",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &a, &bv); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(dispatch.FunctorSub(int32(a), int32(bv)))), nil
			}),
		"example_CustomOperation": starlark.NewBuiltin("example_CustomOperation",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var fn starlark.Value
				var a, bv int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &fn, &a, &bv); err != nil {
					return nil, err
				}
				callable, ok := fn.(starlark.Callable)
				if !ok {
					return nil, ErrNotCallable
				}
				ret := dispatch.CustomOperation(h.binOp(thread, callable), int32(a), int32(bv))
				return starlark.MakeInt(int(ret)), nil
			}),
		"example_FunctionPointers": starlark.NewBuiltin("example_FunctionPointers",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(dispatch.FunctionPointers())), nil
			}),
		"reg_func_ptr_a": starlark.NewBuiltin("reg_func_ptr_a",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				dispatch.RegFuncPtrA()
				return starlark.None, nil
			}),
		"reg_func_ptr_null": starlark.NewBuiltin("reg_func_ptr_null",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				dispatch.RegFuncPtrNull()
				return starlark.None, nil
			}),
		"reg_func_ptr_param": starlark.NewBuiltin("reg_func_ptr_param",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var fn starlark.Value
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &fn); err != nil {
					return nil, err
				}
				callable, ok := fn.(starlark.Callable)
				if !ok {
					return nil, ErrNotCallable
				}
				dispatch.RegFuncPtrParam(h.valueFunc(callable))
				return starlark.None, nil
			}),
		"example_StringLen": starlark.NewBuiltin("example_StringLen",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var msg string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &msg); err != nil {
					return nil, err
				}
				buf := append([]byte(msg), 0)
				return starlark.MakeInt(int(dispatch.StringLen(buf))), nil
			}),
		"example_SumElements": starlark.NewBuiltin("example_SumElements",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var list *starlark.List
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &list); err != nil {
					return nil, err
				}
				elem := make([]uint16, list.Len())
				for n := range elem {
					val, err := starlark.AsInt32(list.Index(n))
					if err != nil {
						return nil, err
					}
					elem[n] = uint16(val)
				}
				ret := dispatch.SumElements(elem, uint16(len(elem)))
				return starlark.MakeInt(int(ret)), nil
			}),
		"quick_sort": starlark.NewBuiltin("quick_sort",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var list *starlark.List
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &list); err != nil {
					return nil, err
				}
				seq := make([]int32, list.Len())
				for n := range seq {
					val, err := starlark.AsInt32(list.Index(n))
					if err != nil {
						return nil, err
					}
					seq[n] = int32(val)
				}
				h.Target.Engine.Sort(seq, 0, len(seq)-1)
				out := make([]starlark.Value, len(seq))
				for n, val := range seq {
					out[n] = starlark.MakeInt(int(val))
				}
				return starlark.NewList(out), nil
			}),
		"target_tick": starlark.NewBuiltin("target_tick",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				if err := h.Target.Tick(); err != nil {
					return nil, err
				}
				return starlark.None, nil
			}),
		"target_passes": starlark.NewBuiltin("target_passes",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(h.Target.Passes())), nil
			}),
		"target_accumulator": starlark.NewBuiltin("target_accumulator",
			func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(h.Target.Accumulator())), nil
			}),
	}

	return
}

// newThread creates a Starlark thread whose print() goes to the log.
func (h *Harness) newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("harness: %v: %v", name, msg)
		},
	}
}

// binOp wraps a script callable as an operator functor, sharing the
// calling script's thread.
func (h *Harness) binOp(thread *starlark.Thread, fn starlark.Callable) dispatch.BinOp {
	return func(a, b int32) int32 {
		args := starlark.Tuple{starlark.MakeInt(int(a)), starlark.MakeInt(int(b))}
		val, err := starlark.Call(thread, fn, args, nil)
		if err != nil {
			log.Printf("harness: %v: %v", fn.Name(), err)
			return 0
		}
		ret, err := starlark.AsInt32(val)
		if err != nil {
			log.Printf("harness: %v: %v", fn.Name(), err)
			return 0
		}
		return int32(ret)
	}
}

// valueFunc wraps a script callable as a slot target. The slot may be
// consumed long after the registering script returns, so each
// invocation gets its own thread.
func (h *Harness) valueFunc(fn starlark.Callable) dispatch.ValueFunc {
	return func() uint32 {
		thread := h.newThread("slot")
		val, err := starlark.Call(thread, fn, nil, nil)
		if err != nil {
			log.Printf("harness: %v: %v", fn.Name(), err)
			return 0
		}
		ret, err := starlark.AsInt32(val)
		if err != nil {
			log.Printf("harness: %v: %v", fn.Name(), err)
			return 0
		}
		return uint32(ret)
	}
}

// Eval evaluates a single expression against the harness globals.
func (h *Harness) Eval(expr string) (val starlark.Value, err error) {
	thread := h.newThread("eval")
	opts := syntax.FileOptions{}

	if h.Verbose {
		log.Printf("harness: eval %v", expr)
	}

	val, err = starlark.EvalOptions(&opts, thread, "<expr>", expr, h.globals)
	return
}

// Exec runs a script from src (a string, []byte, or io.Reader) and
// returns its module globals.
func (h *Harness) Exec(name string, src any) (dict starlark.StringDict, err error) {
	thread := h.newThread(name)
	opts := syntax.FileOptions{}

	dict, err = starlark.ExecFileOptions(&opts, thread, name, src, h.globals)
	return
}

// RunScript loads and runs a script file.
func (h *Harness) RunScript(path string) (dict starlark.StringDict, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	dict, err = h.Exec(path, src)
	return
}
