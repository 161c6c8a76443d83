// Package dispatch holds the calling-convention test points of the
// qsapp target.
//
// Each function demonstrates one argument-passing shape: scalar
// operands, pointer operands, struct by value vs. by pointer, more
// operands than argument registers, operator functors passed as values,
// and an indirect call through the process-wide slot. None of them are
// called from the main loop; a host-side harness invokes them directly
// and inspects arguments and return values.
//
// No input validation is performed anywhere in this package. Nil
// pointers, short slices, and unterminated byte strings fault exactly
// as the unguarded originals do; host-side tests rely on those exact
// semantics, so do not add guards.
package dispatch
