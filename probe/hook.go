package probe

const (
	HOOK_MEM_WORDS = 64 // Scratchpad words handed to the chained hook.
)

var hookChained = func(mem []uint32) {}

// SetHookChained replaces the continuation of TestHook. Host harnesses
// install their setup here; the scratchpad passed to fn is theirs to
// use for the lifetime of the run.
func SetHookChained(fn func(mem []uint32)) {
	if fn == nil {
		fn = func(mem []uint32) {}
	}
	hookChained = fn
}

// TestHook is the test-mode entry point. The target calls it exactly
// once, unconditionally, before the first pass of the main loop.
//
//go:noinline
func TestHook() {
	mem := make([]uint32, HOOK_MEM_WORDS)

	Default.Emit(EVENT_HOOK, TEST_HOOK)

	hookChained(mem)
	Keep(mem)
}
