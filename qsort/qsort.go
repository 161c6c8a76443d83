// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package qsort

// Engine is the partition sort engine. The counters accumulate across
// calls until Reset, mirroring what an observer halting on the swap and
// compare sites would tally.
type Engine struct {
	Compares int // Total isLE invocations.
	Swaps    int // Total swap invocations.
}

// swap exchanges two elements by position. It runs even when both
// positions hold equal values; the call site must stay observable.
//
//go:noinline
func (en *Engine) swap(a, b *int32) {
	t := *a
	*a = *b
	*b = t
	en.Swaps++
}

// isLE reports whether a <= b. Equal elements count as less-or-equal,
// placing them in the lower partition.
//
//go:noinline
func (en *Engine) isLE(a, b int32) (ret bool) {
	en.Compares++

	if a <= b {
		ret = true
	}

	return
}

// partition rearranges seq[low..high] so every element <= the pivot
// (seq[high]) sits below the pivot's final index, and returns that index.
func (en *Engine) partition(seq []int32, low, high int) int {
	pivot := seq[high]
	i := low - 1

	for j := low; j < high; j++ {
		if en.isLE(seq[j], pivot) {
			i++
			en.swap(&seq[i], &seq[j])
		}
	}

	en.swap(&seq[i+1], &seq[high])
	return i + 1
}

// Sort sorts the inclusive index range [low, high] of seq in place.
// A range of one or zero elements is a no-op.
func (en *Engine) Sort(seq []int32, low, high int) {
	if low < high {
		pi := en.partition(seq, low, high)
		en.Sort(seq, low, pi-1)
		en.Sort(seq, pi+1, high)
	}
}

// Reset zeros the observation counters.
func (en *Engine) Reset() {
	en.Compares = 0
	en.Swaps = 0
}

// Sort sorts seq in place with a throwaway engine.
func Sort(seq []int32) {
	en := &Engine{}
	en.Sort(seq, 0, len(seq)-1)
}
